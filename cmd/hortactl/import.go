package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"horta/database"
	"horta/pkg/records"
	recordRepoImp "horta/pkg/records/repositoryImp"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV files from --data into the --db database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		snap, warns, err := records.NewCSVSource(dataDir).Load(ctx)
		if err != nil {
			return err
		}
		for _, w := range warns {
			log.Printf("[records] %s", w)
		}

		repo := recordRepoImp.New(database.OpenSQLite(dbPath))
		if err := repo.ReplaceAll(ctx, snap); err != nil {
			return fmt.Errorf("store snapshot: %w", err)
		}
		counts, err := repo.Counts(ctx)
		if err != nil {
			return err
		}
		for _, t := range []string{records.TableBeds, records.TableSpecies, records.TablePlantings,
			records.TableObservations, records.TableHarvests, records.TableEvents} {
			fmt.Fprintf(cmd.OutOrStdout(), "%-13s %d\n", t, counts[t])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported into %s (%d warnings)\n", dbPath, len(warns))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
