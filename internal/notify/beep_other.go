//go:build !windows

package notify

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"runtime"
)

// Beep is only available on Windows.
type Beep struct{}

// Notify always fails outside Windows.
func (Beep) Notify(context.Context) error {
	return errors.New("beep: not supported on " + runtime.GOOS)
}

// Default returns a spoken message on macOS, a sine tone through sox
// elsewhere, and the terminal bell when neither tool is installed.
func Default(out io.Writer) Notifier {
	var chain Fallback
	if runtime.GOOS == "darwin" {
		if _, err := exec.LookPath("say"); err == nil {
			chain = append(chain, Command{Name: "say", Args: []string{"sweep finished"}})
		}
	} else if _, err := exec.LookPath("play"); err == nil {
		chain = append(chain, Command{Name: "play", Args: []string{"-nq", "-t", "alsa", "synth", "0.5", "sine", "1000"}})
	}
	return append(chain, Bell{Out: out})
}
