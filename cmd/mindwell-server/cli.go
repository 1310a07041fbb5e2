package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mindwell/mindwell/internal/config"
	"github.com/mindwell/mindwell/internal/domain/assessment"
	"github.com/mindwell/mindwell/internal/domain/instrument"
	"github.com/mindwell/mindwell/internal/platform/db"
	"github.com/mindwell/mindwell/migrations"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run Postgres migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *db.Migrator) error {
				count, err := m.Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *db.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				printMigrationStatus(cmd.OutOrStdout(), statuses)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(ctx context.Context, fn func(context.Context, *db.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for migrations")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, db.NewMigrator(pool, migrations.Postgres, migrations.PostgresDir))
}

func printMigrationStatus(w io.Writer, statuses []db.MigrationStatus) {
	fmt.Fprintf(w, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(w, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

// parseResponses reads a comma-separated list of option values.
func parseResponses(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("response %d: %q is not a number", i+1, p)
		}
		out = append(out, v)
	}
	return out, nil
}

func scoreCmd() *cobra.Command {
	var (
		lang   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "score <instrument> <v1,v2,...>",
		Short: "Score a response set offline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, ok := instrument.ParseLocale(lang)
			if !ok {
				return fmt.Errorf("--lang must be en or ms, got %q", lang)
			}
			responses, err := parseResponses(args[1])
			if err != nil {
				return err
			}
			id := strings.ToUpper(args[0])
			res, err := instrument.Score(id, responses)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(cmd.OutOrStdout(), id, res, locale)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", string(instrument.LocaleEN), "Feedback language (en or ms)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func severityColor(hint string) *color.Color {
	switch hint {
	case instrument.ColorGreen:
		return color.New(color.FgGreen)
	case instrument.ColorYellow:
		return color.New(color.FgYellow)
	case instrument.ColorOrange:
		return color.New(color.FgHiRed)
	case instrument.ColorRed:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Reset)
	}
}

func printResult(w io.Writer, id string, res *instrument.ScoringResult, l instrument.Locale) {
	inst, _ := instrument.Lookup(id)
	fmt.Fprintf(w, "%s  total %d  ", inst.Name.In(l), res.TotalScore)
	severityColor(res.Color).Fprintln(w, res.SeverityLevel)
	if s := res.SubscaleScores; s != nil {
		fmt.Fprintf(w, "  depression %d (%s)\n", s.Depression, s.DepressionSeverity)
		fmt.Fprintf(w, "  anxiety    %d (%s)\n", s.Anxiety, s.AnxietySeverity)
		fmt.Fprintf(w, "  stress     %d (%s)\n", s.Stress, s.StressSeverity)
	}
	fmt.Fprintln(w, res.Feedback.In(l))

	if res.CrisisFlagged {
		warn := color.New(color.FgRed, color.Bold)
		warn.Fprintf(w, "\nCrisis item answered: %s\n", res.TriggerReason)
		for _, r := range assessment.CrisisResources() {
			fmt.Fprintf(w, "  %-24s %s\n", r.Name.In(l), r.Phone)
		}
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the instrument catalog",
	}

	var lang string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List instruments",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _ := instrument.ParseLocale(lang)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-8s %-9s %-6s %s\n", "ID", "QUESTIONS", "RANGE", "NAME")
			for _, inst := range instrument.All() {
				fmt.Fprintf(w, "%-8s %-9d %-6s %s\n", inst.ID, len(inst.Questions),
					fmt.Sprintf("%d-%d", inst.MinScore(), inst.MaxScore()), inst.Name.In(l))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&lang, "lang", string(instrument.LocaleEN), "Name language (en or ms)")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show <instrument>",
		Short: "Print an instrument definition as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := instrument.Lookup(strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(inst); err != nil {
				return err
			}
			return enc.Close()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check every instrument definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			failed := 0
			for _, inst := range instrument.All() {
				if err := instrument.Validate(inst); err != nil {
					failed++
					color.New(color.FgRed).Fprintf(w, "FAIL %s: %v\n", inst.ID, err)
					continue
				}
				color.New(color.FgGreen).Fprintf(w, "ok   %s\n", inst.ID)
			}
			if failed > 0 {
				return fmt.Errorf("%d instrument(s) failed validation", failed)
			}
			return nil
		},
	})

	return cmd
}
