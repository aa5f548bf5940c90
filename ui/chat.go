// Package ui renders the chat conversation in the terminal and drives the
// send → tool-dispatch → send cycle around the session.
package ui

import (
	"fmt"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smith/chat"
	"smith/model"
	"smith/tools"
)

const inputHeight = 3

// ChatView is the single-screen bubbletea model. It owns no conversation
// state of its own: the transcript is always rendered from the session's
// history, so a rolled-back turn simply disappears from the screen.
type ChatView struct {
	session    *chat.Session
	dispatcher *tools.Dispatcher

	viewport viewport.Model
	textarea textarea.Model
	spin     spinner.Model

	width  int
	height int
	ready  bool

	busy   bool
	status string
	errMsg string
}

// NewChatView creates the chat screen bound to a session and a dispatcher.
func NewChatView(session *chat.Session, dispatcher *tools.Dispatcher) ChatView {
	ta := textarea.New()
	ta.Placeholder = "Ask smith to change the project..."
	ta.Focus()
	ta.SetHeight(inputHeight)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = DimStyle

	return ChatView{
		session:    session,
		dispatcher: dispatcher,
		textarea:   ta,
		spin:       sp,
	}
}

func (v ChatView) Init() tea.Cmd {
	return textarea.Blink
}

func (v ChatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		chromeHeight := inputHeight + 4 // title, status, help, input padding
		if !v.ready {
			v.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			v.ready = true
		} else {
			v.viewport.Width = msg.Width
			v.viewport.Height = msg.Height - chromeHeight
		}
		v.textarea.SetWidth(msg.Width)
		v.refreshTranscript()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return v, tea.Quit

		case "ctrl+y":
			if text := v.lastAssistantText(); text != "" {
				_ = clipboard.WriteAll(text)
				v.status = "copied last reply"
			}
			return v, nil

		case "enter":
			input := strings.TrimSpace(v.textarea.Value())
			if v.busy || input == "" {
				return v, nil
			}
			if input == "/exit" {
				return v, tea.Quit
			}
			v.textarea.Reset()
			v.errMsg = ""
			v.busy = true
			v.status = "waiting for model"
			return v, tea.Batch(
				v.spin.Tick,
				sendCmd(v.session, model.UserText(input)),
			)
		}

	case replyMsg:
		if msg.err != nil {
			v.busy = false
			v.status = ""
			v.errMsg = msg.err.Error()
			v.refreshTranscript()
			return v, nil
		}
		v.refreshTranscript()
		if uses := msg.reply.ToolUses(); len(uses) > 0 {
			v.status = fmt.Sprintf("running %d tool call(s)", len(uses))
			return v, dispatchCmd(v.dispatcher, uses)
		}
		v.busy = false
		v.status = ""
		return v, nil

	case toolsDoneMsg:
		if msg.err != nil {
			// Malformed tool invocation from the model; abort the turn.
			v.busy = false
			v.status = ""
			v.errMsg = fmt.Sprintf("malformed tool call: %v", msg.err)
			return v, nil
		}
		v.status = "waiting for model"
		return v, sendCmd(v.session, msg.results)

	case spinner.TickMsg:
		if !v.busy {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd
	}

	var taCmd, vpCmd tea.Cmd
	v.textarea, taCmd = v.textarea.Update(msg)
	v.viewport, vpCmd = v.viewport.Update(msg)
	return v, tea.Batch(taCmd, vpCmd)
}

func (v ChatView) View() string {
	if !v.ready {
		return "loading..."
	}

	var status string
	switch {
	case v.errMsg != "":
		status = ErrorStyle.Render("error: " + v.errMsg)
	case v.busy:
		status = v.spin.View() + DimStyle.Render(v.status)
	default:
		status = HelpStyle.Render("enter send • ctrl+y copy reply • esc quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("smith"),
		v.viewport.View(),
		status,
		v.textarea.View(),
	)
}

// refreshTranscript re-renders the whole history into the viewport and
// scrolls to the bottom.
func (v *ChatView) refreshTranscript() {
	if !v.ready {
		return
	}
	var b strings.Builder
	for _, msg := range v.session.History {
		b.WriteString(v.renderMessage(msg))
		b.WriteString("\n")
	}
	v.viewport.SetContent(b.String())
	v.viewport.GotoBottom()
}

func (v *ChatView) renderMessage(msg model.Message) string {
	var b strings.Builder
	for _, item := range msg.Content {
		switch item.Type {
		case model.ContentText:
			if msg.Role == model.RoleAssistant {
				rendered := markdown.Render(item.Text, max(v.width-2, 20), 0)
				b.WriteString(AssistantStyle.Render("smith:") + "\n")
				b.Write(rendered)
			} else {
				b.WriteString(UserStyle.Render("you: ") + item.Text + "\n")
			}
		case model.ContentToolUse:
			b.WriteString(DimStyle.Render(fmt.Sprintf("→ %s %v", item.Name, item.Input)) + "\n")
		case model.ContentToolResult:
			b.WriteString(DimStyle.Render("← "+truncate(item.Content, 200)) + "\n")
		}
	}
	return b.String()
}

// lastAssistantText returns the text of the most recent assistant message.
func (v *ChatView) lastAssistantText() string {
	for i := len(v.session.History) - 1; i >= 0; i-- {
		msg := v.session.History[i]
		if msg.Role != model.RoleAssistant {
			continue
		}
		var texts []string
		for _, item := range msg.Content {
			if item.Type == model.ContentText {
				texts = append(texts, item.Text)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}
	return ""
}

// truncate cuts s to at most n runes so multi-byte characters never get
// split mid-sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
