package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// ErrInvocationFailed is returned when an operation produced an error document.
var ErrInvocationFailed = errors.New("invocation failed")

// Invoker is the part of the gateway used by the invoke command.
type Invoker interface {
	Invoke(ctx context.Context, name string, args map[string]any) domain.Result
	Operation(name string) (domain.Operation, bool)
}

// InvokeOptions control how a result is printed.
type InvokeOptions struct {
	// Render formats markdown for the terminal; nil prints the raw text.
	Render func(string) (string, error)
}

// RunInvoke executes one operation and prints its document to out.
func RunInvoke(ctx context.Context, gw Invoker, name string, pairs []string, out io.Writer, opts InvokeOptions) error {
	op, _ := gw.Operation(name)
	args, err := ParseArgs(op, pairs)
	if err != nil {
		return err
	}

	res := gw.Invoke(ctx, name, args)
	text := res.Text
	if opts.Render != nil && !res.IsError() {
		if rendered, err := opts.Render(text); err == nil {
			text = rendered
		}
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(out, text); err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrInvocationFailed, name)
	}
	return nil
}

// PrintCatalog writes a short listing of the operations and their parameters.
func PrintCatalog(out io.Writer, ops []domain.Operation) {
	for _, op := range ops {
		fmt.Fprintf(out, "%s\n", op.Name)
		for _, p := range op.Params {
			var notes []string
			if p.Required {
				notes = append(notes, "required")
			}
			if p.HasDefault() {
				notes = append(notes, fmt.Sprintf("default %v", p.Default))
			}
			if len(p.Enum) > 0 {
				notes = append(notes, "one of "+strings.Join(p.Enum, "|"))
			}
			if p.Min != nil && p.Max != nil {
				notes = append(notes, fmt.Sprintf("%d..%d", *p.Min, *p.Max))
			}
			line := fmt.Sprintf("  --arg %s=<%s>", p.Name, p.Type)
			if len(notes) > 0 {
				line += "  (" + strings.Join(notes, ", ") + ")"
			}
			fmt.Fprintln(out, line)
		}
	}
}
