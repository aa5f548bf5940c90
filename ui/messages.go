package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"smith/chat"
	"smith/model"
	"smith/tools"
)

// replyMsg is sent when a provider turn completes.
type replyMsg struct {
	reply model.Message
	err   error
}

// toolsDoneMsg is sent after every tool invocation of a reply has been
// dispatched. Err is only set for malformed tool invocations (missing or
// wrongly typed fields); operational tool failures travel inside results
// as text for the model to read.
type toolsDoneMsg struct {
	results model.Message
	err     error
}

// sendCmd runs one Send turn off the UI goroutine.
func sendCmd(session *chat.Session, msg model.Message) tea.Cmd {
	return func() tea.Msg {
		reply, err := session.Send(context.Background(), msg)
		return replyMsg{reply: reply, err: err}
	}
}

// dispatchCmd executes the tool invocations from an assistant reply and
// bundles the results into the user message that feeds the next turn.
func dispatchCmd(dispatcher *tools.Dispatcher, uses []model.ContentItem) tea.Cmd {
	return func() tea.Msg {
		items := make([]model.ContentItem, 0, len(uses))
		for _, use := range uses {
			result, err := dispatcher.Dispatch(context.Background(), use)
			if err != nil {
				return toolsDoneMsg{err: err}
			}
			items = append(items, model.ToolResultContent(use.ID, result))
		}
		return toolsDoneMsg{results: model.Message{Role: model.RoleUser, Content: items}}
	}
}
