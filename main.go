package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ludhianaseo/reviewqr/api"
	"github.com/ludhianaseo/reviewqr/config"
	"github.com/ludhianaseo/reviewqr/kiosk"
	"github.com/ludhianaseo/reviewqr/metrics"
	"github.com/ludhianaseo/reviewqr/review"
)

var version = "v0.1.0"

func main() {
	// A missing .env is fine; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the reviewqr command tree.
func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "reviewqr",
		Short:        "Google review QR code and review suggestion generator",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")

	// --- serve command -------------------------------------------------------
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the review QR web page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.AddCommand(serveCmd)

	// --- generate command ----------------------------------------------------
	var (
		copyReview bool
		pngPath    string
	)
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a review suggestion and the review QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), configPath, copyReview, pngPath, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	generateCmd.Flags().BoolVar(&copyReview, "copy", false, "Copy the review to the system clipboard")
	generateCmd.Flags().StringVar(&pngPath, "png", "", "Also write the QR code PNG to this path (- for stdout)")
	root.AddCommand(generateCmd)

	// --- url command ---------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "url",
		Short: "Print the review URL encoded in the QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.Payload())
			return nil
		},
	})

	// --- verify command ------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Encode the review URL and check that it decodes back",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(configPath, cmd.OutOrStdout())
		},
	})

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reviewqr %s\n", version)
		},
	})

	return root
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// buildService turns a loaded config into the generate action.
func buildService(cfg *config.Config) (*kiosk.Service, error) {
	book, err := cfg.PhraseBook()
	if err != nil {
		return nil, fmt.Errorf("load phrases: %w", err)
	}
	gen := review.NewGenerator(cfg.BusinessName, book, nil)
	return kiosk.NewService(gen, cfg.PlaceID, cfg.QROptions()), nil
}

func newService(configPath string) (*kiosk.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return buildService(cfg)
}

// runServe is the web entrypoint that wires all components together.
func runServe(configPath string) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Setup logger
	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting reviewqr", "version", version, "port", cfg.Port, "business", cfg.BusinessName)

	// 3. Build the generate action
	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	// 4. Start HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Kiosk:     svc,
			Registry:  metrics.NewRegistry(),
			Log:       log,
			Version:   version,
			StartTime: time.Now(),
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("review page is ready", "url", fmt.Sprintf("http://localhost:%d/", cfg.Port), "payload", svc.Payload())

	// 5. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}

// errGenerate is the only failure the generate command reports; the cause is
// logged to stderr.
var errGenerate = errors.New("an unexpected error occurred")

// runGenerate is the single-shot terminal shell.
func runGenerate(ctx context.Context, configPath string, copyReview bool, pngPath string, stdout, stderr io.Writer) error {
	log := slog.New(slog.NewTextHandler(stderr, nil))

	if err := generateOnce(ctx, configPath, copyReview, pngPath, stdout); err != nil {
		log.Error("generate failed", "error", err)
		return errGenerate
	}
	return nil
}

func generateOnce(ctx context.Context, configPath string, copyReview bool, pngPath string, stdout io.Writer) error {
	svc, err := newService(configPath)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := svc.Generate(ctx)
	if err != nil {
		return err
	}

	if pngPath == "-" {
		data, err := res.Code.PNG()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	res.Code.Terminal(stdout)
	fmt.Fprintln(stdout, res.Payload)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, res.ReviewText)

	if pngPath != "" {
		data, err := res.Code.PNG()
		if err != nil {
			return err
		}
		if err := os.WriteFile(pngPath, data, 0o644); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}

	if copyReview {
		if err := clipboard.WriteAll(res.ReviewText); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(stdout, "\nThe suggested review has been copied to your clipboard.")
	}
	return nil
}

func runVerify(configPath string, stdout io.Writer) error {
	svc, err := newService(configPath)
	if err != nil {
		return err
	}
	code, err := svc.QRCode()
	if err != nil {
		return err
	}
	if err := code.Verify(); err != nil {
		return fmt.Errorf("verify qr: %w", err)
	}
	fmt.Fprintf(stdout, "ok: %d modules, decodes to %s\n", code.Size(), code.Payload)
	return nil
}
