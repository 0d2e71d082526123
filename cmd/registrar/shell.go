package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  add                 register a record (prompts for name and e-mail)
  delete EMAIL        delete every record with EMAIL
  clear               delete all records
  search [TERM]       filter the list; no TERM shows everything
  list                show every record
  help                show this help
  quit                leave the shell`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive registry session",
	Long: `Start an interactive session that keeps the form state between commands.

An active search is re-applied after each delete, and the name and e-mail
inputs are cleared after a successful registration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.runShell(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// runShell reads commands until quit or end of input. Command errors are
// printed and the session continues.
func (s *session) runShell(ctx context.Context) error {
	if err := s.ctl.Initialize(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.out, `Type "help" for commands.`)

	for {
		line, err := s.terminal.ReadLine("registrar> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := s.exec(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// exec runs one shell command line.
func (s *session) exec(ctx context.Context, line string) (bool, error) {
	command, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, shellHelp)
		return false, nil
	case "list":
		_, err := s.ctl.Render(ctx)
		return false, err
	case "add":
		return false, s.add(ctx)
	case "delete":
		if rest == "" {
			return false, errors.New("usage: delete EMAIL")
		}
		_, err := s.ctl.DeleteOne(ctx, rest)
		return false, err
	case "clear":
		_, err := s.ctl.DeleteAll(ctx)
		return false, err
	case "search":
		s.form.SearchValue = rest
		_, err := s.ctl.Search(ctx, rest)
		return false, err
	}
	return false, fmt.Errorf("unknown command %q", command)
}

// add fills the form from the terminal and registers it. An empty answer
// keeps the value left in the form by a failed registration.
func (s *session) add(ctx context.Context) error {
	name, err := s.prompt("Name", s.form.NameValue)
	if err != nil {
		return err
	}
	email, err := s.prompt("E-mail", s.form.EmailValue)
	if err != nil {
		return err
	}
	s.form.NameValue = name
	s.form.EmailValue = email

	_, err = s.ctl.Register(ctx)
	return err
}

func (s *session) prompt(label, current string) (string, error) {
	p := label + ": "
	if current != "" {
		p = fmt.Sprintf("%s [%s]: ", label, current)
	}
	answer, err := s.terminal.ReadLine(p)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}
