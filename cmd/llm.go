package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/learnflow/learnflow/internal/content"
	"github.com/learnflow/learnflow/internal/llm"
	"github.com/learnflow/learnflow/internal/logger"
)

var llmCmd = &cobra.Command{
	Use:   "llm <query>",
	Short: "Generate a learning package from the command line",
	Long:  "One-shot smoke test: runs a query through the configured provider and prints the package as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		log, err := logger.New(os.Getenv("LOG_MODE"))
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		ctx := cmd.Context()
		cfg := llm.ConfigFromEnv()
		provider, err := llm.NewProvider(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("init provider: %w", err)
		}

		svc := content.NewService(provider, content.DefaultConfig())

		query := strings.Join(args, " ")
		pkg, err := svc.Generate(ctx, query)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		out, err := json.MarshalIndent(pkg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal package: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}
