// Package chat owns the conversation: the message history, the token
// budget that bounds it, and the send/rollback cycle against the bound
// provider backend.
package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"smith/config"
	"smith/model"
	"smith/provider"
	"smith/tree"
)

// systemPromptTemplate frames every request. The %s is the project file
// tree, so the model can plan read_file/write_file paths without guessing.
const systemPromptTemplate = `You are a coding assistant working on a project.

File tree structure:
%s

The user will give you instructions on how to change the project code.

Always call 'compile_check' tool after completing changes that the user requests. If compile_check shows any errors, make subsequent calls to correct the errors. Continue checking and rewriting until there are no more errors. If there are warnings then do not try to fix them, just let the user know. If any bash commands are needed like installing packages use tool 'execute'.

Never make any changes outside of the project's root directory.
Always read and write entire file contents. Never write partial contents of a file.

The user may also ask general questions and in that case simply answer but do not execute any tools.`

// InvalidRoleError is returned by Send before any network activity when the
// outgoing message is not a user message.
type InvalidRoleError struct {
	Role model.Role
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("can only send messages with user role when querying model, got %q", e.Role)
}

// TokenCounter estimates the token count of a text. Any consistent subword
// tokenizer works; the estimate is a budget heuristic, not the provider's
// own count.
type TokenCounter func(text string) int

// TreeFunc supplies the project file listing for the system prompt.
type TreeFunc func() (string, error)

// Session holds one conversation against one backend. A session is strictly
// sequential, one outstanding query at a time, and its history only ever
// reflects complete, successful turns.
type Session struct {
	// ID tags debug log lines; a process runs exactly one session.
	ID string
	// History is owned by the session. External callers read it for
	// rendering but must not mutate it.
	History []model.Message

	provider    provider.Provider
	maxTokens   int
	countTokens TokenCounter
	projectTree TreeFunc
}

// Option adjusts a Session at construction, mainly so tests can substitute
// the tokenizer and the tree source.
type Option func(*Session)

// WithTokenCounter overrides the token estimator.
func WithTokenCounter(fn TokenCounter) Option {
	return func(s *Session) { s.countTokens = fn }
}

// WithTreeFunc overrides the project tree source.
func WithTreeFunc(fn TreeFunc) Option {
	return func(s *Session) { s.projectTree = fn }
}

// NewSession creates a session bound to the given backend with a history
// budget of maxContext estimated tokens.
func NewSession(p provider.Provider, maxContext int, opts ...Option) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		provider:    p,
		maxTokens:   maxContext,
		countTokens: CountTokens,
		projectTree: tree.GetTree,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send drives one turn: trim the history to the token budget, append the
// user message, query the backend, and append the assistant reply.
//
// On any failure the just-appended user message is popped, leaving the
// history exactly as it was before the call, so retrying the same message
// after an error cannot duplicate it.
func (s *Session) Send(ctx context.Context, msg model.Message) (model.Message, error) {
	if msg.Role != model.RoleUser {
		return model.Message{}, &InvalidRoleError{Role: msg.Role}
	}

	treeListing, err := s.projectTree()
	if err != nil {
		return model.Message{}, fmt.Errorf("listing project tree: %w", err)
	}
	systemMessage := fmt.Sprintf(systemPromptTemplate, treeListing)

	s.trimToTokenLimit()
	s.History = append(s.History, msg)

	resp, err := s.provider.QueryModel(ctx, s.History, systemMessage)
	if err != nil {
		s.History = s.History[:len(s.History)-1]
		if config.Debug {
			config.DebugLog.Printf("[Session %s] query failed, turn rolled back: %v", s.ID, err)
		}
		return model.Message{}, err
	}

	reply := model.Message{Role: model.RoleAssistant, Content: resp.Content}
	s.History = append(s.History, reply)

	if config.Debug {
		config.DebugLog.Printf("[Session %s] turn complete: response %s, stop_reason %s, history %d messages",
			s.ID, resp.ID, resp.StopReason, len(s.History))
	}

	return reply, nil
}

// trimToTokenLimit greedily evicts the oldest message until the estimate
// fits the budget or the history is empty. Each removal strictly shrinks
// the total, so the loop terminates. The result is always a contiguous
// suffix of the original history.
func (s *Session) trimToTokenLimit() {
	for s.totalTokens() > s.maxTokens && len(s.History) > 0 {
		s.History = s.History[1:]
	}
}

// totalTokens estimates the history size: per message, the role label
// concatenated with the flattened content, tokenized and counted.
func (s *Session) totalTokens() int {
	total := 0
	for _, msg := range s.History {
		total += s.countTokens(string(msg.Role) + " " + model.FlattenContent(msg.Content))
	}
	return total
}
