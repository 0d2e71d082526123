// Package dialog provides the blocking confirm and acknowledge prompts the
// controller pauses on.
package dialog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Dialog asks the user for a decision or shows a notice.
// Both calls block until the user has answered or acknowledged.
type Dialog interface {
	Confirm(message string) bool
	Alert(message string)
}

// Terminal prompts on a writer and reads answers line by line from a reader.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	// AssumeYes answers every confirmation with yes without reading input.
	AssumeYes bool
}

// NewTerminal creates a Terminal reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm prints message and waits for a yes/no line. End of input is no.
func (t *Terminal) Confirm(message string) bool {
	fmt.Fprintf(t.out, "%s [y/N] ", message)
	if t.AssumeYes {
		fmt.Fprintln(t.out, "y")
		return true
	}
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return false
	}
	return isYes(line)
}

// Alert prints message.
func (t *Terminal) Alert(message string) {
	fmt.Fprintln(t.out, message)
}

// ReadLine prints prompt and returns the next input line without its
// trailing newline. io.EOF is returned once input is exhausted.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(t.out, prompt)
	}
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

// Scripted answers every confirmation with a fixed value and records the
// messages it was shown.
type Scripted struct {
	Answer bool

	mu       sync.Mutex
	confirms []string
	alerts   []string
}

// NewScripted returns a Scripted dialog answering answer.
func NewScripted(answer bool) *Scripted {
	return &Scripted{Answer: answer}
}

// Confirm records message and returns the scripted answer.
func (s *Scripted) Confirm(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirms = append(s.confirms, message)
	return s.Answer
}

// Alert records message.
func (s *Scripted) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
}

// Confirms returns the confirmation prompts shown so far.
func (s *Scripted) Confirms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.confirms...)
}

// Alerts returns the notices shown so far.
func (s *Scripted) Alerts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.alerts...)
}
