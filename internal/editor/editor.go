package editor

import (
	"os"
	"os/exec"
)

// Editor handles editor resolution and invocation.
type Editor struct {
	configured string
}

// NewEditor creates a new Editor. configured is the editor named in the
// boardkit config and may be empty.
func NewEditor(configured string) *Editor {
	return &Editor{configured: configured}
}

// Resolve returns the editor command to use.
// Order: boardkit config > $EDITOR > vim
func (e *Editor) Resolve() string {
	// 1. Config
	if e.configured != "" {
		return e.configured
	}

	// 2. Environment variable
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// 3. Default
	return "vim"
}

// Edit opens the editor with the given content and returns the edited content.
func (e *Editor) Edit(content []byte) ([]byte, error) {
	// .json so editors pick the right syntax mode
	tmpFile, err := os.CreateTemp("", "boardkit-edit-*.json")
	if err != nil {
		return nil, err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return nil, err
	}
	tmpFile.Close()

	cmd := exec.Command(e.Resolve(), tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(tmpPath)
}
