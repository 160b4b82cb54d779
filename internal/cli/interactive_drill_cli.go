// Package cli implements the interactive terminal drill.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
)

var (
	errEnd = errors.New("end")
)

// InteractiveDrillCLI contains shared logic for interactive CLIs
type InteractiveDrillCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
}

func newInteractiveDrillCLI(stdin io.Reader, stdout io.Writer) *InteractiveDrillCLI {
	return &InteractiveDrillCLI{
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen, color.Bold),
		red:          color.New(color.FgRed, color.Bold),
	}
}

//go:generate mockgen -source=interactive_drill_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// Run calls session.Session until it ends, fails, or an interrupt arrives.
func (cli *InteractiveDrillCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// readLine prints prompt and reads one line. io.EOF is returned only when nothing was read.
func (cli *InteractiveDrillCLI) readLine(prompt string) (string, error) {
	_, _ = cli.bold.Fprint(cli.stdoutWriter, prompt)
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}
