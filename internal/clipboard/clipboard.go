// Package clipboard copies code-block content to the system clipboard
// during copy mode. It is a thin wrapper around atotto/clipboard, which
// already falls back to xclip/xsel on Linux when no X11/Wayland
// clipboard utility is configured.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/keagud/gptty/internal/apperrors"
)

// Copy writes text to the system clipboard. The operation is scoped: the
// underlying backend is opened and released within this call, never held
// across ticks of the UI loop.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return apperrors.IO("copy to clipboard", err)
	}
	return nil
}
