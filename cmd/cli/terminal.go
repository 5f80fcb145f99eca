// cmd/cli/terminal.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// terminal shows alerts on stdout and asks confirm prompts on stdin, or answers
// them all with yes when assumeYes is set.
type terminal struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
	last      string
}

func newTerminal(in io.Reader, out io.Writer, assumeYes bool) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

func (t *terminal) Alert(message string) {
	fmt.Fprintf(t.out, "! %s\n", message)
}

func (t *terminal) Confirm(message string) bool {
	if t.assumeYes {
		fmt.Fprintf(t.out, "? %s [y/N] y\n", message)
		return true
	}

	fmt.Fprintf(t.out, "? %s [y/N] ", message)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (t *terminal) Navigate(target string) {
	t.last = target
	fmt.Fprintf(t.out, "-> %s\n", target)
}
