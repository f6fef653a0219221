package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kievzenit/slox/internal/colors"
	"github.com/kievzenit/slox/internal/config"
	"github.com/kievzenit/slox/internal/driver"
	"github.com/kievzenit/slox/internal/runtime"
	"github.com/peterh/liner"
)

const banner = "slox %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func runRepl(d *driver.Driver, cfg *config.Config, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath := cfg.HistoryPath(); histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintf(stdout, banner+"\n", version)

	for {
		source, ok := readSource(ln, cfg.Prompt, cfg.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(stdout)
			return driver.ExitOK
		}

		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return driver.ExitOK
			case ":globals":
				fmt.Fprintln(stdout, strings.Join(d.GlobalNames(), " "))
			default:
				fmt.Fprintln(stdout, "unknown command. Type :quit to exit, :globals to list globals.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		value, _ := d.EvalLine(source)
		if value != nil {
			echo(stdout, value, cfg.Color)
		}
	}
}

// readSource prompts until the input is no longer incomplete. It returns
// false on end of input.
func readSource(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}

		line, err := ln.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !driver.IsIncomplete(b.String()) {
			return b.String(), true
		}
	}
}

func echo(w io.Writer, value runtime.Value, color bool) {
	text := runtime.Stringify(value)
	if !color {
		fmt.Fprintln(w, text)
		return
	}

	switch value.Kind() {
	case runtime.KindString:
		colors.YELLOW.Fprintln(w, text)
	case runtime.KindNumber, runtime.KindBool:
		colors.BLUE.Fprintln(w, text)
	default:
		colors.GREY.Fprintln(w, text)
	}
}
