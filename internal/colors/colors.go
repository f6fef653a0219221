package colors

import (
	"fmt"
	"io"
	"strings"
)

type COLOR string

const (
	RESET  COLOR = "\033[0m"
	RED    COLOR = "\033[31m"
	YELLOW COLOR = "\033[33m"
	BLUE   COLOR = "\033[94m"
	GREY   COLOR = "\033[90m"
)

func (c COLOR) Fprintln(w io.Writer, args ...any) {
	line := strings.TrimSuffix(fmt.Sprintln(args...), "\n")
	fmt.Fprintln(w, string(c)+line+string(RESET))
}
