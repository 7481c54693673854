//go:build windows

package notify

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sys/windows"
)

const mbOK = 0x00000000

var procMessageBeep = windows.NewLazySystemDLL("user32.dll").NewProc("MessageBeep")

// Beep plays the default system sound.
type Beep struct{}

// Notify calls MessageBeep.
func (Beep) Notify(context.Context) error {
	if err := procMessageBeep.Find(); err != nil {
		return fmt.Errorf("beep: %w", err)
	}
	if r, _, err := procMessageBeep.Call(mbOK); r == 0 {
		return fmt.Errorf("beep: %w", err)
	}
	return nil
}

// Default returns the system beep, falling back to the terminal bell.
func Default(out io.Writer) Notifier {
	return Fallback{Beep{}, Bell{Out: out}}
}
