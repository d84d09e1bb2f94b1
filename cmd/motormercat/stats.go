package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mbatlle/motormercat/internal/cli"
	"github.com/mbatlle/motormercat/internal/service"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog aggregates",
		Long:  `Display total vehicle counts, counts by vehicle kind, and sold versus for-sale counts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			total, err := store.CountVehicles(ctx, service.VehicleFilter{})
			if err != nil {
				return fmt.Errorf("failed to count vehicles: %w", err)
			}

			sold := true
			soldCount, err := store.CountVehicles(ctx, service.VehicleFilter{Sold: &sold})
			if err != nil {
				return fmt.Errorf("failed to count sold vehicles: %w", err)
			}

			byKind, err := store.CountVehiclesByKind(ctx)
			if err != nil {
				return fmt.Errorf("failed to group vehicles by kind: %w", err)
			}

			fmt.Println(cli.FormatTitle("Catalog statistics"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total\t%d\n", total)
			fmt.Fprintf(w, "For sale\t%d\n", total-soldCount)
			fmt.Fprintf(w, "Sold\t%d\n", soldCount)
			for _, kc := range byKind {
				fmt.Fprintf(w, "%s\t%d\n", kc.Kind, kc.Count)
			}
			return w.Flush()
		},
	}
}
