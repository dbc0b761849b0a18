// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/allisson/credvault/internal/app"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// CloseContainer shuts the container down and logs any error.
func CloseContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// prompter reads answers from an IOTuple. Secrets are read without echo when the reader is a
// terminal and as plain lines otherwise, so piped input and tests work the same way.
type prompter struct {
	reader *bufio.Reader
	writer io.Writer
	fd     int
	tty    bool
}

func newPrompter(io IOTuple) *prompter {
	p := &prompter{
		reader: bufio.NewReader(io.Reader),
		writer: io.Writer,
	}
	if f, ok := io.Reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// line prints question and returns the trimmed answer. A final line without newline is accepted.
func (p *prompter) line(question string) (string, error) {
	_, _ = fmt.Fprint(p.writer, question)

	answer, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// secret prints question and returns the answer without echoing it on a terminal.
func (p *prompter) secret(question string) (string, error) {
	_, _ = fmt.Fprint(p.writer, question)

	if !p.tty {
		answer, err := p.reader.ReadString('\n')
		_, _ = fmt.Fprintln(p.writer)
		if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimRight(answer, "\r\n"), nil
	}

	answer, err := term.ReadPassword(p.fd)
	_, _ = fmt.Fprintln(p.writer)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(answer), nil
}
