package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"smith/model"
)

// compileCheckTimeout bounds compile_check wall-clock time. The tool is
// meant for commands that may never exit on their own (dev servers,
// watchers), so the child process is killed once the deadline passes and
// whatever output was captured is returned.
const compileCheckTimeout = 5 * time.Second

// MissingFieldError reports a required field absent from a tool invocation's
// input. This is malformed model output, so unlike operational tool failures
// it surfaces as a hard error instead of a textual tool result.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %q field in tool input", e.Field)
}

// WrongFieldTypeError reports a tool input field present with the wrong type.
type WrongFieldTypeError struct {
	Field string
	Want  string
	Got   any
}

func (e *WrongFieldTypeError) Error() string {
	return fmt.Sprintf("%q field is not a %s: %v", e.Field, e.Want, e.Got)
}

// Dispatcher executes tool invocations against the host filesystem and
// shell. All paths resolve relative to the project root and shell commands
// run with the root as working directory.
type Dispatcher struct {
	root           string
	compileTimeout time.Duration
}

// NewDispatcher creates a dispatcher rooted at the project directory.
func NewDispatcher(root string) *Dispatcher {
	return &Dispatcher{root: root, compileTimeout: compileCheckTimeout}
}

// Dispatch runs the tool named by a tool_use content item and returns its
// textual result.
//
// Operational failures (unreadable file, nonzero exit) are reported inside
// the returned text, not as errors: the model is the intended consumer and
// is expected to read them and react in the next turn. Hard errors are
// reserved for caller/model misuse: a non-tool_use item, or a missing or
// wrongly typed required field. An unknown tool name yields a textual
// "Unknown tool" result so the model can self-correct.
func (d *Dispatcher) Dispatch(ctx context.Context, item model.ContentItem) (string, error) {
	if item.Type != model.ContentToolUse {
		return "", errors.New("not a tool_use content item")
	}

	switch item.Name {
	case "read_file":
		path, err := stringField(item.Input, "path")
		if err != nil {
			return "", err
		}
		fullPath := filepath.Join(d.root, path)
		data, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Sprintf("Error reading file %s: %v.", fullPath, err), nil
		}
		return string(data), nil

	case "write_file":
		path, err := stringField(item.Input, "path")
		if err != nil {
			return "", err
		}
		content, err := stringField(item.Input, "content")
		if err != nil {
			return "", err
		}
		fullPath := filepath.Join(d.root, path)
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			return fmt.Sprintf("Error writing to file %s: %v.", fullPath, err), nil
		}
		return fmt.Sprintf("Successfully wrote content to file %s.", fullPath), nil

	case "execute":
		statement, err := stringField(item.Input, "statement")
		if err != nil {
			return "", err
		}
		return d.runShell(ctx, statement, 0), nil

	case "compile_check":
		cmd, err := stringField(item.Input, "cmd")
		if err != nil {
			return "", err
		}
		return d.runShell(ctx, cmd, d.compileTimeout), nil

	default:
		return fmt.Sprintf("Unknown tool: %s", item.Name), nil
	}
}

// runShell executes one bash statement in the project root, capturing stdout
// and stderr separately. Both are embedded in the result regardless of exit
// code. A non-zero timeout kills the child once it elapses.
func (d *Dispatcher) runShell(ctx context.Context, statement string, timeout time.Duration) string {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "bash", "-c", statement)
	cmd.Dir = d.root
	if timeout > 0 {
		// Forked children inherit the output pipes and would keep Wait
		// blocked past the kill; stop waiting on pipe I/O shortly after.
		cmd.WaitDelay = time.Second
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Exit status is conversation content, not a dispatch failure.
	_ = cmd.Run()

	result := fmt.Sprintf("Stdout:\n%s\nStderr:\n%s", stdout.String(), stderr.String())
	if timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result += fmt.Sprintf("\n(command terminated after %s timeout)", timeout)
	}
	return result
}

// stringField extracts a required string field from a tool input payload.
func stringField(input map[string]any, name string) (string, error) {
	value, ok := input[name]
	if !ok {
		return "", &MissingFieldError{Field: name}
	}
	s, ok := value.(string)
	if !ok {
		return "", &WrongFieldTypeError{Field: name, Want: "string", Got: value}
	}
	return s, nil
}
