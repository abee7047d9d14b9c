// Package prompt implements the database repair prompts and critical notices
// on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrCanceled is returned when input ends before an answer was given.
var ErrCanceled = errors.New("input canceled")

// Terminal reads answers line by line from in and writes prompts and notices
// to out. An empty answer keeps the current value; end of input cancels.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the descriptor of in when it is an interactive terminal, else -1.
	fd int
}

func New(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
	}
	return t
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrCanceled
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptText asks for a string value.
func (t *Terminal) PromptText(label, current string) (string, bool) {
	fmt.Fprintf(t.out, "%s [%s]: ", label, current)
	line, err := t.readLine()
	if err != nil {
		fmt.Fprintln(t.out)
		return current, false
	}
	if line == "" {
		return current, true
	}
	return line, true
}

// PromptInt asks for an integer in [min, max] reachable from min in multiples
// of step, asking again until the answer is acceptable.
func (t *Terminal) PromptInt(label string, current, min, max, step int) (int, bool) {
	if step < 1 {
		step = 1
	}
	for {
		fmt.Fprintf(t.out, "%s (%d-%d) [%d]: ", label, min, max, current)
		line, err := t.readLine()
		if err != nil {
			fmt.Fprintln(t.out)
			return current, false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return current, true
		}
		v, err := strconv.Atoi(line)
		if err != nil || v < min || v > max || (v-min)%step != 0 {
			fmt.Fprintf(t.out, "%q is not a valid value\n", line)
			continue
		}
		return v, true
	}
}

// Critical renders a blocking error notice.
func (t *Terminal) Critical(msg, detail string) {
	fmt.Fprintln(t.out, CriticalStyle.Render(msg))
	if detail != "" {
		fmt.Fprintln(t.out, DetailStyle.Render(detail))
	}
}

// Password asks for a secret. On a terminal the input is not echoed.
func (t *Terminal) Password(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	if t.fd >= 0 {
		b, err := term.ReadPassword(t.fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	return t.readLine()
}

// Line asks for a free-form answer. An empty answer returns current.
func (t *Terminal) Line(label, current string) (string, error) {
	fmt.Fprintf(t.out, "%s [%s]: ", label, current)
	line, err := t.readLine()
	if err != nil {
		return current, err
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}
