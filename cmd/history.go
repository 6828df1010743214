package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-StudioService/internal/config"
	sessionRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/session"
	"github.com/m04kA/SMC-StudioService/internal/integrations/notifier"
	sessionsService "github.com/m04kA/SMC-StudioService/internal/service/sessions"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

func newHistoryCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print totals over the finished sessions stored in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cfg.Database.Enabled {
				return fmt.Errorf("database is disabled in %s", *configPath)
			}

			log := logger.NewWithWriter(os.Stderr, "warn")

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Database.LoadTimeout)*time.Second)
			defer cancel()

			db, err := openDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := sessionRepo.NewRepository(db, cfg.Database.Driver)

			stored, err := repo.CountFinished(ctx)
			if err != nil {
				return err
			}
			history, err := repo.LoadFinished(ctx)
			if err != nil {
				return err
			}

			// Итоги считаются тем же реестром, что и в serve
			registry := sessionsService.NewService(notifier.NewClient("", time.Second, nil, log), 0, log)
			if cfg.Clock.Timezone != "" {
				loc, err := time.LoadLocation(cfg.Clock.Timezone)
				if err != nil {
					return fmt.Errorf("failed to load timezone %q: %w", cfg.Clock.Timezone, err)
				}
				registry.WithLocation(loc)
			}
			registry.Seed(history)
			agg := registry.Aggregates()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "finished sessions: %d\n", stored)
			fmt.Fprintf(out, "today:  %d sessions, revenue %s\n", agg.TodayCount, agg.TodayRevenue.StringFixed(2))
			fmt.Fprintf(out, "month:  %d sessions, revenue %s\n", agg.MonthCount, agg.MonthRevenue.StringFixed(2))
			return nil
		},
	}
}
