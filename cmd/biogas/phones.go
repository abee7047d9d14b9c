package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPhonesCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phones",
		Short: "Manage phone numbers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List phone numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				phones, err := s.app.Phones(ctx, userID)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNUMBER")
				for _, p := range phones {
					fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Number)
				}
				return w.Flush()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <number>",
		Short: "Add a phone number in E.164 format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				p, err := s.app.AddPhone(ctx, userID, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added phone %d: %s\n", p.ID, p.Number)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <id> <number>",
		Short: "Replace a phone number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("phone", args[0])
			if err != nil {
				return err
			}
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				if err := s.app.UpdatePhone(ctx, userID, id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Phone %d updated\n", id)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("phone", args[0])
			if err != nil {
				return err
			}
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				if err := s.app.RemovePhone(ctx, userID, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Phone %d removed\n", id)
				return nil
			})
		},
	})
	return cmd
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", kind, s)
	}
	return id, nil
}
