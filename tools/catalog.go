// Package tools holds the static tool catalog offered to the model and the
// dispatcher that executes model-emitted tool invocations on the host.
package tools

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// catalog is the single source of truth for what the model may invoke. It
// is identical for every provider; only the wire encoding differs (see
// convert.go). Constructed once, never mutated.
var catalog = []mcptypes.Tool{
	mcptypes.NewTool("read_file",
		mcptypes.WithDescription("Read file as string using path relative to root directory of project."),
		mcptypes.WithString("path",
			mcptypes.Required(),
			mcptypes.Description("The file path relative to the project root directory"),
		),
	),
	mcptypes.NewTool("write_file",
		mcptypes.WithDescription("Write string to file at path relative to root directory of project."),
		mcptypes.WithString("path",
			mcptypes.Required(),
			mcptypes.Description("The file path relative to the project root directory"),
		),
		mcptypes.WithString("content",
			mcptypes.Required(),
			mcptypes.Description("The content to write to the file"),
		),
	),
	mcptypes.NewTool("execute",
		mcptypes.WithDescription("Execute bash statements as a single string."),
		mcptypes.WithString("statement",
			mcptypes.Required(),
			mcptypes.Description("The bash statement to be executed."),
		),
	),
	mcptypes.NewTool("compile_check",
		mcptypes.WithDescription("Check if project compiles or runs without error. Use for commands that may not terminate on their own; they are stopped after a short timeout."),
		mcptypes.WithString("cmd",
			mcptypes.Required(),
			mcptypes.Description("The command to check for compiler/interpreter errors."),
		),
	),
}

// Specs returns the tool catalog.
func Specs() []mcptypes.Tool {
	return catalog
}
