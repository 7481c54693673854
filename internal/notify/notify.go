// Package notify signals the end of a sweep. Platform specifics live behind
// build tags so that callers only see the Notifier interface.
package notify

//go:generate mockgen -destination=mocks/notifier_mock.go -package=mocks github.com/agbru/paramsweep/internal/notify Notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Notifier signals that a run has completed.
type Notifier interface {
	Notify(ctx context.Context) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context) error

// Notify calls f.
func (f Func) Notify(ctx context.Context) error { return f(ctx) }

// Nop does nothing.
type Nop struct{}

// Notify returns nil.
func (Nop) Notify(context.Context) error { return nil }

// Bell writes the terminal bell character.
type Bell struct {
	Out io.Writer
}

// Notify writes BEL to Out.
func (b Bell) Notify(context.Context) error {
	if b.Out == nil {
		return errors.New("bell: no output")
	}
	_, err := io.WriteString(b.Out, "\a")
	return err
}

// Command runs an external program, such as a text-to-speech or tone
// generator.
type Command struct {
	Name string
	Args []string
}

// Notify runs the command and waits for it to exit.
func (c Command) Notify(ctx context.Context) error {
	if c.Name == "" {
		return errors.New("command: empty name")
	}
	if out, err := exec.CommandContext(ctx, c.Name, c.Args...).CombinedOutput(); err != nil {
		if len(out) > 0 {
			return fmt.Errorf("%s: %w: %s", c.Name, err, out)
		}
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}

// Fallback tries each notifier in order and stops at the first success.
type Fallback []Notifier

// Notify returns the joined errors when every notifier fails.
func (f Fallback) Notify(ctx context.Context) error {
	var errs []error
	for _, n := range f {
		err := n.Notify(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ByName returns the notifier selected on the command line: "bell", "beep",
// "none", "default", or any other value as a command line split on spaces.
func ByName(name string, out io.Writer) Notifier {
	switch name {
	case "", "none", "off":
		return Nop{}
	case "bell":
		return Bell{Out: out}
	case "beep":
		return Fallback{Beep{}, Bell{Out: out}}
	case "default":
		return Default(out)
	}
	fields := splitFields(name)
	return Command{Name: fields[0], Args: fields[1:]}
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	if len(fields) == 0 {
		fields = []string{s}
	}
	return fields
}
