package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"smartrubbish/internal/app"
	"smartrubbish/internal/config"
	"smartrubbish/internal/services"
	"smartrubbish/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var rootCmd = &cobra.Command{
	Use:   "rubbishctl",
	Short: "Operator tools for the Smart Rubbish Detection service",
}

var (
	reportFormat string
	reportOut    string
)

func init() {
	weeklyReportCmd.Flags().StringVar(&reportFormat, "format", "both", "export format: json, csv or both")
	weeklyReportCmd.Flags().StringVar(&reportOut, "out", ".", "output directory")

	rootCmd.AddCommand(weeklyReportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(adminsCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// deps is what the commands pull out of the container.
type deps struct {
	cfg      *config.Config
	store    *storage.Adapter
	accounts *services.AccountService
	reports  *services.ReportService
	weekly   *services.WeeklyReportGenerator
}

// withDeps starts the container, runs fn and shuts it down again.
func withDeps(fn func(d deps) error) error {
	var d deps
	container := fx.New(
		app.Module,
		fx.NopLogger,
		fx.Populate(&d.cfg, &d.store, &d.accounts, &d.reports, &d.weekly),
	)
	if err := container.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := container.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := container.Stop(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	return fn(d)
}

var weeklyReportCmd = &cobra.Command{
	Use:   "weekly-report",
	Short: "Write this week's report export files",
	RunE: func(cmd *cobra.Command, args []string) error {
		formats, err := exportFormats(reportFormat)
		if err != nil {
			return err
		}
		return withDeps(func(d deps) error {
			paths, err := writeWeeklyReport(d.weekly, d.weekly.Generate(), formats, reportOut)
			for _, p := range paths {
				fmt.Printf("📄 %s\n", p)
			}
			return err
		})
	},
}

func exportFormats(format string) ([]string, error) {
	switch format {
	case "json", "csv":
		return []string{format}, nil
	case "both":
		return []string{"json", "csv"}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want json, csv or both)", format)
}

// writeWeeklyReport writes one file per format into dir and returns the paths written.
func writeWeeklyReport(g *services.WeeklyReportGenerator, report services.WeeklyReport, formats []string, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, format := range formats {
		var data []byte
		var err error
		if format == "csv" {
			data, err = report.CSV()
		} else {
			data, err = report.JSON()
		}
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, g.FileName(format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Initialize storage and print the schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(d deps) error {
			if e := d.store.LastError(); e != nil {
				return e
			}
			fmt.Printf("Storage schema version %s (namespace %s)\n", d.store.Version(), d.cfg.StorageNamespace)
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(func(d deps) error {
			s := d.reports.Stats()
			fmt.Printf("Members:      %d\n", s.TotalMembers)
			fmt.Printf("Reports:      %d\n", s.TotalReports)
			fmt.Printf("Satisfaction: %d%%\n", s.Satisfaction)
			fmt.Printf("Next weekly report: %s\n", d.weekly.NextReportDate())
			return nil
		})
	},
}

var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "List the configured administrator emails",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		admins, err := config.LoadAdmins(cfg.AdminsFile)
		if err != nil {
			return err
		}
		for _, a := range admins {
			fmt.Printf("%s\t%s\n", a.Email, a.Name)
		}
		return nil
	},
}
