package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joestump/biogas/internal/prompt"
)

// pick is one --pick SUBSTRATE:AMOUNT:TS argument.
type pick struct {
	substrateID int64
	amount      float64
	ts          float64
}

func parsePick(s string) (pick, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return pick{}, fmt.Errorf("invalid pick %q: want SUBSTRATE:AMOUNT:TS", s)
	}
	id, err := parseID("substrate", parts[0])
	if err != nil {
		return pick{}, err
	}
	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return pick{}, fmt.Errorf("invalid amount in pick %q: %w", s, err)
	}
	ts, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return pick{}, fmt.Errorf("invalid TS in pick %q: %w", s, err)
	}
	return pick{substrateID: id, amount: amount, ts: ts}, nil
}

func newCalcCmd(flags *rootFlags) *cobra.Command {
	var picks []string
	cmd := &cobra.Command{
		Use:   "calc <plant-id>",
		Short: "Estimate biogas and methane production of a substrate mix",
		Long: "Estimate biogas and methane production of a substrate mix for one plant.\n" +
			"Without --pick, lists the substrates available to the user.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plantID, err := parseID("plant", args[0])
			if err != nil {
				return err
			}
			parsed := make([]pick, 0, len(picks))
			for _, p := range picks {
				pk, err := parsePick(p)
				if err != nil {
					return err
				}
				parsed = append(parsed, pk)
			}

			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				plan, err := s.app.NewPlan(ctx, userID, plantID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				if len(parsed) == 0 {
					subs, err := s.app.Substrates(ctx, userID)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, prompt.Heading(fmt.Sprintf("Substrates (plant volume %g)", plan.MaxVolume)))
					w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tOTS %\tBIOGAS\tMETHANE")
					for _, sub := range subs {
						fmt.Fprintf(w, "%d\t%s\t%g\t%g\t%g\n", sub.ID, sub.Name, sub.OTS, sub.Biogas, sub.Methane)
					}
					return w.Flush()
				}

				for _, pk := range parsed {
					sub, err := s.app.Substrate(ctx, userID, pk.substrateID)
					if err != nil {
						return fmt.Errorf("substrate %d: %w", pk.substrateID, err)
					}
					if err := plan.Add(*sub, pk.amount, pk.ts); err != nil {
						return err
					}
				}

				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "SUBSTRATE\tAMOUNT\tTS %")
				for _, pk := range plan.Picks() {
					fmt.Fprintf(w, "%s\t%g\t%g\n", pk.Substrate.Name, pk.Amount, pk.TS)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				y := plan.Expected()
				fmt.Fprintf(out, "\nAvailable volume: %g of %g\n", plan.Available(), plan.MaxVolume)
				fmt.Fprintf(out, "Expected biogas:  %.2f\nExpected methane: %.2f\n", y.Biogas, y.Methane)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&picks, "pick", nil, "substrate to add as SUBSTRATE:AMOUNT:TS (repeatable)")
	return cmd
}
