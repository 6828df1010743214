package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env не обязателен: переменные окружения могут прийти из оркестратора
	_ = godotenv.Load()

	return newRootCmd().Execute()
}

// newRootCmd создает команду верхнего уровня "studio" и регистрирует подкоманды
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "studio",
		Short:         "Studio service: session timers, billing and staff shifts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newHistoryCmd(&configPath),
	)

	return root
}
