package lox_errors

import (
	"fmt"
	"io"

	"github.com/kievzenit/slox/internal/colors"
)

// LoxError is implemented by every diagnostic the front end and the
// evaluator produce.
type LoxError interface {
	error
	GetMessage() string
	GetLine() int
}

type ErrorHandler interface {
	AddError(err LoxError)
	HasErrors() bool
	Errors() []LoxError
	Reset()
	Report()
}

type CompilerErrorHandler struct {
	errors []LoxError
	writer io.Writer
	color  bool
}

func NewErrorHandler(outputWriter io.Writer) *CompilerErrorHandler {
	return &CompilerErrorHandler{
		errors: make([]LoxError, 0),
		writer: outputWriter,
	}
}

// WithColor makes Report wrap every line in an ANSI color.
func (eh *CompilerErrorHandler) WithColor(enabled bool) *CompilerErrorHandler {
	eh.color = enabled
	return eh
}

func (eh *CompilerErrorHandler) AddError(err LoxError) {
	eh.errors = append(eh.errors, err)
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

func (eh *CompilerErrorHandler) Errors() []LoxError {
	out := make([]LoxError, len(eh.errors))
	copy(out, eh.errors)
	return out
}

func (eh *CompilerErrorHandler) Reset() {
	eh.errors = eh.errors[:0]
}

// Report writes one line per collected error, in the order they were added.
func (eh *CompilerErrorHandler) Report() {
	for _, err := range eh.errors {
		if eh.color {
			colors.RED.Fprintln(eh.writer, err.Error())
			continue
		}
		fmt.Fprintln(eh.writer, err.Error())
	}
}
