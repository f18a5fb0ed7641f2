package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gookit/color"
	"github.com/tartampluch/go-phonebook/internal/commands"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// session is the interactive prompt: one command per line, whitespace separated.
type session struct {
	handler *commands.Handler
	in      io.Reader
	out     io.Writer
}

func newSession(h *commands.Handler, in io.Reader, out io.Writer) *session {
	return &session{handler: h, in: in, out: out}
}

// Run reads commands until exit, end of input or cancellation. The last two
// save the address book like an explicit exit does.
func (s *session) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go s.readLines(lines, readErr, done)

	for {
		fmt.Fprint(s.out, color.Cyan.Sprint(config.PromptText))

		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
			return s.finish(ctx)

		case err := <-readErr:
			if err != nil {
				slog.Error(config.ErrInputRead,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err)
			}
			return s.finish(ctx)

		case line := <-lines:
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			res := s.handler.Execute(ctx, fields[0], fields[1:])
			s.print(res)
			if res.Exit {
				return nil
			}
		}
	}
}

// finish saves on the way out. A failed save is returned so the process
// exits with an error code.
func (s *session) finish(ctx context.Context) error {
	fmt.Fprintln(s.out)
	res := s.handler.Execute(context.WithoutCancel(ctx), config.CmdExit, nil)
	s.print(res)
	return res.Err
}

func (s *session) print(res commands.Result) {
	if res.Err != nil {
		fmt.Fprintln(s.out, color.Red.Sprint(res.Text))
		return
	}
	fmt.Fprintln(s.out, res.Text)
}

// readLines feeds lines to the session until EOF, a read error or done.
func (s *session) readLines(lines chan<- string, readErr chan<- error, done <-chan struct{}) {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	readErr <- scanner.Err()
}
