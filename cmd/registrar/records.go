package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every stored record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.ctl.Initialize(cmd.Context())
	},
}

var addCmd = &cobra.Command{
	Use:   "add NAME EMAIL",
	Short: "Register a new record",
	Long: `Register a new record stamped with the current local time.

Duplicates are allowed. Blank values are accepted unless strict validation
is enabled.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		s.form.NameValue = args[0]
		s.form.EmailValue = args[1]
		_, err = s.ctl.Register(cmd.Context())
		return err
	},
}

var deleteSearch string

var deleteCmd = &cobra.Command{
	Use:   "delete EMAIL",
	Short: "Delete every record with the given e-mail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		s.form.SearchValue = deleteSearch
		_, err = s.ctl.DeleteOne(cmd.Context(), args[0])
		return err
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		_, err = s.ctl.DeleteAll(cmd.Context())
		return err
	},
}

var searchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Show records whose name or e-mail contains TERM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		_, err = s.ctl.Search(cmd.Context(), args[0])
		return err
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteSearch, "search", "", "re-apply this search after deleting")

	rootCmd.AddCommand(listCmd, addCmd, deleteCmd, clearCmd, searchCmd)
}
