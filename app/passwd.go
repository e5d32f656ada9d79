package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/orgdesk/orgdesk/internal/auth"
	"github.com/orgdesk/orgdesk/internal/daemon"
)

const minPasswordLen = "min=8"

func init() { //nolint: gochecknoinits
	passwdCmd.Flags().Uint64Var(&passwdUserID, "user", 0, "Id of the user")
	passwdCmd.Flags().StringVar(&passwdOld, "old", "", "Current password")
	passwdCmd.Flags().StringVar(&passwdNew, "new", "", "New password, at least 8 characters")

	_ = passwdCmd.MarkFlagRequired("user")
	_ = passwdCmd.MarkFlagRequired("old")
	_ = passwdCmd.MarkFlagRequired("new")

	rootCmd.AddCommand(passwdCmd)
}

var (
	passwdUserID uint64
	passwdOld    string
	passwdNew    string

	passwdCmd = &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of a user, e.g. the generated admin password",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.New().Var(passwdNew, minPasswordLen); err != nil {
				return fmt.Errorf("new password: %w", err)
			}

			return loadConfig(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := daemon.OpenDB(&cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if err = auth.NewService(db).ChangePassword(passwdUserID, passwdOld, passwdNew); err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "password of user %d changed\n", passwdUserID)

			return err //nolint:wrapcheck
		},
	}
)
