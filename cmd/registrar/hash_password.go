package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/registrar/internal/auth"
	"github.com/mmynk/registrar/internal/dialog"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [PASSWORD]",
	Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	Long: `Print a bcrypt hash suitable for ADMIN_PASSWORD_HASH.

The password is read from standard input when not given as an argument.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := dialog.NewTerminal(os.Stdin, cmd.ErrOrStderr()).ReadLine("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = line
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
