package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/biogas/internal/prompt"
	"github.com/joestump/biogas/internal/store"
)

func newAddressCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Show or edit the correspondence address",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the correspondence address",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				a, err := s.app.Address(ctx, userID)
				if errors.Is(err, store.ErrNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "No address stored")
					return nil
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, prompt.Heading("Correspondence address"))
				fmt.Fprintf(out, "%s %s\n%s %s\n%s\n", a.Street, a.Number, a.PostalCode, a.City, a.Country)
				return nil
			})
		},
	})

	var next store.Address
	set := &cobra.Command{
		Use:   "set",
		Short: "Save the correspondence address; omitted flags keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, flags, func(ctx context.Context, s *session, userID int64) error {
				a, err := s.app.Address(ctx, userID)
				if errors.Is(err, store.ErrNotFound) {
					a = &store.Address{}
				} else if err != nil {
					return err
				}
				f := cmd.Flags()
				for name, field := range map[string]struct{ dst, src *string }{
					"city":        {&a.City, &next.City},
					"street":      {&a.Street, &next.Street},
					"number":      {&a.Number, &next.Number},
					"postal-code": {&a.PostalCode, &next.PostalCode},
					"country":     {&a.Country, &next.Country},
				} {
					if f.Changed(name) {
						*field.dst = *field.src
					}
				}
				if err := s.app.SaveAddress(ctx, userID, *a); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Address saved")
				return nil
			})
		},
	}
	set.Flags().StringVar(&next.City, "city", "", "city")
	set.Flags().StringVar(&next.Street, "street", "", "street")
	set.Flags().StringVar(&next.Number, "number", "", "house number")
	set.Flags().StringVar(&next.PostalCode, "postal-code", "", "postal code")
	set.Flags().StringVar(&next.Country, "country", "", "country")
	cmd.AddCommand(set)
	return cmd
}
