// Package console is the line-oriented terminal channel of the game.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"jeopardy-game/internal/domain"
)

// Console reads answers one line at a time and writes prompts and messages.
// A read runs on its own goroutine so a cancelled context unblocks Ask.
type Console struct {
	out   io.Writer
	lines chan lineResult
	in    *bufio.Scanner
	err   error
}

type lineResult struct {
	text string
	err  error
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Ask writes prompt and waits for the next line, without its line ending.
// End of input yields domain.ErrInputClosed, then and on every later call.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}

	if c.lines == nil {
		c.lines = make(chan lineResult, 1)
		go c.read(c.lines)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-c.lines:
		if res.err != nil {
			c.err = res.err
			return "", res.err
		}
		c.lines = nil
		return strings.TrimRight(res.text, "\r"), nil
	}
}

func (c *Console) read(lines chan<- lineResult) {
	if c.in.Scan() {
		lines <- lineResult{text: c.in.Text()}
		return
	}
	err := c.in.Err()
	if err == nil || errors.Is(err, io.EOF) {
		err = domain.ErrInputClosed
	} else {
		err = fmt.Errorf("read input: %w", errors.Join(domain.ErrInputClosed, err))
	}
	lines <- lineResult{err: err}
}
