package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/learnflow/learnflow/internal/content"
	"github.com/learnflow/learnflow/internal/handlers"
	"github.com/learnflow/learnflow/internal/llm"
	"github.com/learnflow/learnflow/internal/logger"
	"github.com/learnflow/learnflow/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "learnflow",
	Short: "LearnFlow API server",
	Long:  "LearnFlow — backend that turns a topic query into an LLM-generated learning package.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("addr", "", "Listen address (overrides LEARNFLOW_ADDR env var)")

	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// runServer wires the provider, services, and router, then serves until
// SIGINT/SIGTERM.
func runServer(cmd *cobra.Command) error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := llm.ConfigFromEnv()
	provider, err := llm.NewProvider(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init provider: %w", err)
	}
	// Startup is not blocked by a bad credential; the error surfaces on
	// each generate request instead.
	if err := cfg.Validate(); err != nil {
		log.Warn("LLM provider not configured", "error", err.Error())
	}

	svc := content.NewService(provider, content.DefaultConfig())

	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		GenerateHandler: handlers.NewGenerateHandler(log, svc),
		HealthHandler:   handlers.NewHealthHandler(svc.ModelID()),
	})

	addr := resolveAddr(cmd)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("server started", "addr", addr, "model", svc.ModelID())

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// resolveAddr returns the listen address using --addr (highest priority),
// then LEARNFLOW_ADDR, then the default.
func resolveAddr(cmd *cobra.Command) string {
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		return a
	}
	if a := os.Getenv("LEARNFLOW_ADDR"); a != "" {
		return a
	}
	return ":8000"
}
