package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/biogas/internal/prompt"
)

func newPlantsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plants",
		Short: "List the user's plants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				plants, err := s.app.Plants(ctx, userID)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tLOCATION")
				for _, p := range plants {
					fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Location)
				}
				return w.Flush()
			})
		},
	}
}

func newServicesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "services <plant-id>",
		Short: "Show a plant's service log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plantID, err := parseID("plant", args[0])
			if err != nil {
				return err
			}
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				services, err := s.app.Services(ctx, userID, plantID)
				if err != nil {
					return err
				}
				now := time.Now()
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DATE\tTITLE\tDONE\tNOTICE")
				for _, svc := range services {
					date := svc.Date
					if svc.Overdue(now) {
						date = prompt.OverdueStyle.Render(date)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", date, svc.Title, svc.DoneLabel(), svc.Notice)
				}
				return w.Flush()
			})
		},
	}
}
