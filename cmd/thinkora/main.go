package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ateebshaikh21/Thinkora/internal/handler"
	"github.com/Ateebshaikh21/Thinkora/internal/i18n"
	"github.com/Ateebshaikh21/Thinkora/internal/llm"
	"github.com/Ateebshaikh21/Thinkora/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "thinkora",
		Short: "Exam question predictor and quiz generator for study material",
	}

	serve := serveCmd()
	root.AddCommand(serve, analyzeCmd(), quizCmd(), hashTokenCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func addLogFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().String("log-format", "text", "Log format (text, json)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8000", "HTTP listen address")
	f.String("db-driver", string(store.DriverSQLite), "Database driver (sqlite, postgres)")
	f.String("db", "", "Database DSN or SQLite path (default thinkora.db, or a local postgres database)")
	f.StringSlice("cors-origins", []string{"http://localhost:5173"}, "Allowed CORS origins (comma separated)")
	f.StringP("lang", "l", "en", "Default feedback language (en, ru)")
	f.String("llm-url", "", "OpenAI-compatible API base URL (empty disables explanations unless --llm-key is set)")
	f.String("llm-key", "", "API key for the LLM endpoint")
	f.String("llm-model", "gpt-4o-mini", "LLM model name")
	f.String("api-token-hash", "", "bcrypt hash of the API token guarding delete and rename (empty disables)")
	f.Int("quiz-time-limit", 1800, "Quiz time limit in seconds")
	addLogFlags(cmd)
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("THINKORA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("thinkora")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/thinkora")
	v.AddConfigPath("/etc/thinkora")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := store.Driver(strings.ToLower(v.GetString("db-driver")))
	db, err := store.New(ctx, driver, v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	lang := v.GetString("lang")
	if err := i18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	llmClient := llm.New(v.GetString("llm-url"), v.GetString("llm-key"), v.GetString("llm-model"))
	if llmClient == nil {
		slog.Warn("no LLM endpoint configured, explanations are disabled")
	} else if err := llmClient.Ping(ctx); err != nil {
		slog.Warn("LLM health check failed, explanations may be unavailable", "error", err)
	} else {
		slog.Info("LLM endpoint OK", "url", v.GetString("llm-url"), "model", v.GetString("llm-model"))
	}

	h := handler.New(db, llmClient, handler.Config{
		QuizTimeLimit: v.GetInt("quiz-time-limit"),
		TokenHash:     v.GetString("api-token-hash"),
		CORSOrigins:   v.GetStringSlice("cors-origins"),
	})

	addr := v.GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
	}()

	slog.Info("starting server",
		"addr", addr,
		"db_driver", driver,
		"lang", lang,
		"llm_enabled", llmClient != nil,
		"token_guard", v.GetString("api-token-hash") != "",
		"quiz_time_limit", v.GetInt("quiz-time-limit"),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("server stopped")
	return nil
}
