package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Responder answers chat messages.
type Responder interface {
	Handle(ctx context.Context, text string) (reply string, ok bool)
}

// Transport delivers messages to a Responder until ctx is done or input ends.
type Transport interface {
	Serve(ctx context.Context, r Responder) error
}

// REPL is a line-oriented Transport over a reader and writer, e.g. a terminal.
type REPL struct {
	in     io.Reader
	out    io.Writer
	prompt string
}

// NewREPL creates a REPL. An empty prompt prints none.
func NewREPL(in io.Reader, out io.Writer, prompt string) *REPL {
	return &REPL{in: in, out: out, prompt: prompt}
}

// Serve reads one command per line and writes each reply on its own line.
// Lines that are not commands are ignored.
func (r *REPL) Serve(ctx context.Context, resp Responder) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		r.showPrompt()
		select {
		case <-ctx.Done():
			return nil
		case line, open := <-lines:
			if !open {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			reply, ok := resp.Handle(ctx, line)
			if !ok {
				continue
			}
			if _, err := fmt.Fprintln(r.out, reply); err != nil {
				return fmt.Errorf("write reply: %w", err)
			}
		}
	}
}

func (r *REPL) showPrompt() {
	if r.prompt != "" {
		_, _ = fmt.Fprint(r.out, r.prompt)
	}
}
