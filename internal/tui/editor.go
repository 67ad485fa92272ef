package tui

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keagud/gptty/internal/apperrors"
)

const defaultUnixEditor = "vi"

// editorCommand resolves the external editor to spawn: the EDITOR
// environment variable on Unix, a platform default otherwise.
func editorCommand() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return defaultUnixEditor
}

type editorResultMsg struct {
	path string
	err  error
}

// openEditorCmd seeds a temp file with the current compose buffer,
// spawns the configured editor on it via tea.ExecProcess (which releases
// the terminal for the child process and restores it on return), and
// reports the temp file's path back through editorResultMsg so the
// Update loop can read the edited content.
func (m *Model) openEditorCmd() tea.Cmd {
	m.showEditor = false

	f, err := os.CreateTemp("", "gptty-*.md")
	if err != nil {
		m.alert = apperrors.IO("create editor temp file", err).Error()
		return nil
	}
	path := f.Name()

	if _, err := f.WriteString(m.input.Value()); err != nil {
		f.Close()
		m.alert = apperrors.IO("seed editor temp file", err).Error()
		return nil
	}
	f.Close()

	cmd := exec.Command(editorCommand(), path)

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorResultMsg{path: path, err: err}
	})
}

// applyEditorResult reads back the temp file the editor wrote to: a
// trimmed-empty result leaves the compose buffer unchanged, otherwise
// the buffer is replaced wholesale.
func (m *Model) applyEditorResult(msg editorResultMsg) {
	defer os.Remove(msg.path)

	if msg.err != nil {
		m.alert = apperrors.IO("external editor failed", msg.err).Error()
		return
	}

	raw, err := os.ReadFile(msg.path)
	if err != nil {
		m.alert = apperrors.IO("read editor temp file", err).Error()
		return
	}

	if strings.TrimSpace(string(raw)) == "" {
		return
	}

	m.input.SetValue(string(raw))
}
