package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"horta/config"
	"horta/database"
	"horta/pkg/records"
	recordRepoImp "horta/pkg/records/repositoryImp"
	"horta/pkg/report"
	svc "horta/pkg/report/service"
	reportSvcImp "horta/pkg/report/serviceImp"
	"horta/pkg/selection"
)

var (
	cfg        config.AppConfig
	dataDir    string
	dbPath     string
	sourceKind string
)

var rootCmd = &cobra.Command{
	Use:          "hortactl",
	Short:        "Garden records admin tool",
	Long:         "Import garden CSV records into SQLite, print KPIs and export workbooks.",
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	cfg = config.Load()
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", cfg.DataDir, "directory with the garden CSV files")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", cfg.Source, "record source: csv or sqlite")
	return rootCmd.ExecuteContext(ctx)
}

func source() records.Source {
	if sourceKind == config.SourceSQLite {
		return recordRepoImp.New(database.OpenSQLite(dbPath))
	}
	return records.NewCSVSource(dataDir)
}

// loadService builds a report service and loads it once.
func loadService(ctx context.Context) (svc.ReportService, error) {
	s := reportSvcImp.New(source())
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// filterFlags are the report criteria shared by summary and export.
type filterFlags struct {
	from, to, species, bed, responsible, method, search string
	activeOnly                                          bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.from, "from", "", "first planting date (YYYY-MM-DD)")
	fl.StringVar(&f.to, "to", "", "last planting date (YYYY-MM-DD)")
	fl.StringVar(&f.species, "species", "", "species common name")
	fl.StringVar(&f.bed, "bed", "", "bed name")
	fl.StringVar(&f.responsible, "responsible", "", "person responsible")
	fl.StringVar(&f.method, "method", "", "planting method")
	fl.StringVar(&f.search, "q", "", "text searched in notes and observation comments")
	fl.BoolVar(&f.activeOnly, "active-only", false, "only plantings without any harvest")
}

func (f *filterFlags) criteria() (selection.Criteria, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set(selection.ParamFrom, f.from)
	set(selection.ParamTo, f.to)
	set(selection.ParamSpecies, f.species)
	set(selection.ParamBed, f.bed)
	set(selection.ParamResponsible, f.responsible)
	set(selection.ParamMethod, f.method)
	set(selection.ParamSearch, f.search)
	if f.activeOnly {
		q.Set(selection.ParamActiveOnly, "true")
	}
	return selection.FromQuery(q)
}

func (f *filterFlags) bundle(ctx context.Context) (*report.Bundle, error) {
	c, err := f.criteria()
	if err != nil {
		return nil, err
	}
	s, err := loadService(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return s.Build(c)
}
