// Package tree lists the project's files via git. The listing feeds the
// system prompt and the git root anchors tool path resolution.
package tree

import (
	"fmt"
	"os/exec"
	"strings"
)

// GetGitRoot returns the absolute path of the enclosing git working tree.
func GetGitRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// GetTree returns a newline-delimited listing of all tracked files,
// relative to the git root. Untracked and ignored files are deliberately
// absent: what git does not track, the model has no business editing.
func GetTree() (string, error) {
	root, err := GetGitRoot()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("git", "ls-files")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("listing tracked files: %w", err)
	}

	return strings.TrimRight(string(out), "\n"), nil
}
