package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/biogas/internal/prompt"
	"github.com/joestump/biogas/internal/store"
)

func newLoginCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the user's credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				p, err := s.app.Personal(ctx, userID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %d %s %s\n", userID, p.Name, p.Surname)
				return nil
			})
		},
	}
}

func newProfileCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit personal data",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show personal data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				p, err := s.app.Personal(ctx, userID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, prompt.Heading("Personal data"))
				fmt.Fprintf(out, "Name:    %s\nSurname: %s\nE-mail:  %s\n", p.Name, p.Surname, p.Email)
				return nil
			})
		},
	})

	var next store.Personal
	set := &cobra.Command{
		Use:   "set",
		Short: "Update personal data; omitted flags keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				p, err := s.app.Personal(ctx, userID)
				if err != nil {
					return err
				}
				f := cmd.Flags()
				if f.Changed("name") {
					p.Name = next.Name
				}
				if f.Changed("surname") {
					p.Surname = next.Surname
				}
				if f.Changed("email") {
					p.Email = next.Email
				}
				if err := s.app.UpdatePersonal(ctx, userID, *p); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Personal data saved")
				return nil
			})
		},
	}
	set.Flags().StringVar(&next.Name, "name", "", "first name")
	set.Flags().StringVar(&next.Surname, "surname", "", "surname")
	set.Flags().StringVar(&next.Email, "email", "", "e-mail address")
	cmd.AddCommand(set)
	return cmd
}

func newPasswordCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Change the user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.noPrompt {
				return errors.New("password change needs a terminal; drop --no-prompt")
			}
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				oldPassword, err := s.term.Password("Old password")
				if err != nil {
					return err
				}
				newPassword, err := s.term.Password("New password")
				if err != nil {
					return err
				}
				confirm, err := s.term.Password("Repeat new password")
				if err != nil {
					return err
				}
				if newPassword != confirm {
					return errors.New("new passwords do not match")
				}
				if err := s.app.ChangePassword(ctx, userID, oldPassword, newPassword); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
				return nil
			})
		},
	}
}
