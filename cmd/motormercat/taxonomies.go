package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mbatlle/motormercat/internal/cli"
	"github.com/mbatlle/motormercat/internal/common"
	"github.com/mbatlle/motormercat/internal/ingest"
	"github.com/mbatlle/motormercat/internal/model"
)

func taxonomiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomies",
		Short: "Manage classification taxonomies",
		Long: `List and curate the whitelists of valid classification values (brands,
fuel types, body types, colors, ...) that imported vehicles are validated
against. Values reported as unknown by a sync run can be whitelisted here.`,
	}

	cmd.AddCommand(listTaxonomyCmd())
	cmd.AddCommand(addTaxonomyEntryCmd())

	return cmd
}

func listTaxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [taxonomy]",
		Short: "List taxonomy entries",
		Long: `Without arguments, list the available taxonomy names. With a taxonomy
name, list its whitelisted entries.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 0 {
				fmt.Println(cli.FormatTitle("Available taxonomies"))
				for _, taxonomy := range model.AllTaxonomies {
					fmt.Printf("  %s\n", taxonomy)
				}
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.ListTaxonomy(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list taxonomy: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No entries. Use 'motormercat taxonomies add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n",
				cli.TableHeaderStyle.Render("Slug"),
				cli.TableHeaderStyle.Render("Label"))
			for _, entry := range entries {
				label := entry.Label
				if label == "" {
					label = cli.SubtleStyle.Render("(no label)")
				}
				fmt.Fprintf(w, "%s\t%s\n", entry.Slug, label)
			}
			return w.Flush()
		},
	}
}

func addTaxonomyEntryCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "add <taxonomy> <value>",
		Short: "Whitelist a classification value",
		Long: `Add a value to a taxonomy's whitelist. The value is slugified before
being stored, so free text like "Mercedes-Benz" is accepted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taxonomy := args[0]
			slug := ingest.Slugify(args[1])

			if slug == "" {
				return fmt.Errorf("value %q produces an empty slug", args[1])
			}
			if label == "" {
				label = strings.TrimSpace(args[1])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entry, err := store.AddTaxonomyEntry(ctx, taxonomy, slug, label)
			if err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("%q is already whitelisted in %s", slug, taxonomy)))
					return nil
				}
				return fmt.Errorf("failed to add taxonomy entry: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %q to %s", entry.Slug, entry.Taxonomy)))
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Display label (defaults to the raw value)")

	return cmd
}
