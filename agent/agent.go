// Package agent runs a Cairo program end to end: it encodes JSON arguments,
// hands them to an Executor, decodes the return value and optionally passes
// arguments and results through HTTP pre/post-processing hooks.
package agent

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	cairoio "github.com/wippyai/cairo-io"
	"github.com/wippyai/cairo-io/felt"
	"github.com/wippyai/cairo-io/sierra"
	"github.com/wippyai/cairo-io/transcoder"
	"github.com/wippyai/cairo-io/vm"
)

// Executor runs the program's entry point with the given arguments.
type Executor interface {
	Execute(ctx context.Context, args transcoder.FuncArgs) (*Execution, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, args transcoder.FuncArgs) (*Execution, error)

func (f ExecutorFunc) Execute(ctx context.Context, args transcoder.FuncArgs) (*Execution, error) {
	return f(ctx, args)
}

// Execution is what a finished run leaves behind for decoding. For functions
// returning a PanicResult the executor strips the tag and padding and reports
// panics as *PanicError, so ReturnValues hold only the Ok payload.
type Execution struct {
	Memory       cairoio.Memory
	ReturnType   *sierra.TypeID
	Registry     sierra.Registry
	Sizes        sierra.TypeSizes
	ReturnValues []vm.MaybeRelocatable
}

// PanicError carries the panic data of a program that panicked.
type PanicError struct {
	Data []felt.Felt
}

func (e *PanicError) Error() string {
	if len(e.Data) == 0 {
		return "Run panicked with: [Null]"
	}
	parts := make([]string, len(e.Data))
	for i, f := range e.Data {
		parts[i] = formatPanicFelt(f)
	}
	return "Run panicked with: [" + strings.Join(parts, ", ") + "]"
}

// formatPanicFelt renders f in decimal, followed by its bytes as text when
// they form valid UTF-8.
func formatPanicFelt(f felt.Felt) string {
	b := f.Bytes()
	text := bytes.TrimLeft(b[:], "\x00")
	if len(text) == 0 || !utf8.Valid(text) {
		return f.String()
	}
	return f.String() + " ('" + string(text) + "')"
}
