// qdrant-init provisions the homelab Qdrant collections over the HTTP
// management API: wait for the service, create each builtin collection and
// its payload field indexes if missing, then print the final inventory.
//
// Env vars:
//
//	QDRANT_HOST — management API host (default: localhost)
//	QDRANT_PORT — management API port (default: 6333)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vektorops/qdrant-init/internal/config"
	"github.com/vektorops/qdrant-init/internal/domain"
	logpkg "github.com/vektorops/qdrant-init/internal/logger"
	"github.com/vektorops/qdrant-init/internal/metrics"
	"github.com/vektorops/qdrant-init/internal/transport/qdrant"
	"github.com/vektorops/qdrant-init/internal/usecase/provision"
	"github.com/vektorops/qdrant-init/internal/version"
)

var (
	cfgPath     string
	host        string
	port        int
	maxRetries  int
	delaySec    int
	timeoutSec  int
	metricsAddr string
	strict      bool
	logLevel    string
	logJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "qdrant-init",
	Short: "Provision Qdrant vector collections for homelab services",
	Long: `qdrant-init waits for a Qdrant instance to become reachable, then
idempotently creates the builtin vector collections (documents, chat_history,
code_snippets, knowledge_base) with their payload field indexes, and prints
an inventory of all collections when done.

Collections that already exist are left untouched. Provisioning failures are
reported per collection and do not abort the run; only an unreachable service
is fatal (exit 1). With --strict, partial provisioning failure also exits
non-zero.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	rootCmd.Flags().StringVar(&host, "host", "", "Qdrant host (overrides config and QDRANT_HOST)")
	rootCmd.Flags().IntVar(&port, "port", 0, "Qdrant HTTP port (overrides config and QDRANT_PORT)")
	rootCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "max liveness probe attempts (default 30)")
	rootCmd.Flags().IntVar(&delaySec, "delay", 0, "seconds between probe attempts (default 2)")
	rootCmd.Flags().IntVar(&timeoutSec, "timeout", 0, "per-request timeout in seconds (default 30)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run (e.g. :9090)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any collection fails to provision")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&logJSON, "log-json", false, "log as JSON instead of console output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, _ []string) error {
	// .env is optional; homelab deployments keep QDRANT_HOST/PORT there.
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, cmd)

	logger, err := logpkg.New(effectiveLevel(cfg), logJSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	return run(ctx, cfg, logger)
}

// applyFlags layers explicitly-set CLI flags over config and env.
func applyFlags(cfg *config.Config, cmd *cobra.Command) {
	if cmd.Flags().Changed("host") {
		cfg.Qdrant.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Qdrant.Port = port
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.Probe.MaxAttempts = maxRetries
	}
	if cmd.Flags().Changed("delay") {
		cfg.Probe.DelaySec = delaySec
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Qdrant.RequestTimeoutSec = timeoutSec
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = metricsAddr
	}
}

func effectiveLevel(cfg config.Config) string {
	if logLevel != "" {
		return logLevel
	}
	return cfg.Logging.Level
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting qdrant-init",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("qdrant_url", cfg.Qdrant.BaseURL()),
		zap.Int("max_attempts", cfg.Probe.MaxAttempts),
		zap.Int("delay_sec", cfg.Probe.DelaySec),
	)

	var m *metrics.Set
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		srv := metrics.Serve(cfg.Metrics.Addr, reg, logger)
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	client := qdrant.New(qdrant.Config{
		BaseURL: cfg.Qdrant.BaseURL(),
		Timeout: time.Duration(cfg.Qdrant.RequestTimeoutSec) * time.Second,
		Logger:  logger,
		Metrics: m,
	})

	banner()
	fmt.Println("Qdrant Collection Initializer")
	banner()

	fmt.Printf("Waiting for Qdrant at %s...\n", client.BaseURL())
	delay := time.Duration(cfg.Probe.DelaySec) * time.Second
	if err := client.WaitReady(ctx, cfg.Probe.MaxAttempts, delay); err != nil {
		fmt.Println("✗ Qdrant is not available after maximum retries")
		return err
	}
	fmt.Println("✓ Qdrant is ready!")

	// Best-effort version print; purely cosmetic.
	if info, err := client.ServiceInfo(ctx); err == nil {
		v := info.Version
		if v == "" {
			v = "Unknown"
		}
		fmt.Printf("\nQdrant version: %s\n", v)
	}

	specs := domain.BuiltinCollections()
	if err := domain.ValidateUnique(specs); err != nil {
		return err
	}
	svc := provision.New(client, os.Stdout, logger, m)

	fmt.Println("\nCreating collections...")
	sum := svc.Run(ctx, specs)
	fmt.Printf("\nCreated %d/%d collections successfully\n", sum.Succeeded(), sum.Total())

	printInventory(ctx, svc)

	fmt.Println()
	banner()
	fmt.Println("Initialization complete!")
	fmt.Printf("Qdrant UI available at: %s/dashboard\n", client.BaseURL())
	banner()

	if strict && sum.Succeeded() < sum.Total() {
		return fmt.Errorf("provisioned %d/%d collections", sum.Succeeded(), sum.Total())
	}
	return nil
}

func printInventory(ctx context.Context, svc *provision.Service) {
	names, err := svc.Inventory(ctx)
	if err != nil {
		// Informational only, never fatal.
		fmt.Printf("Error listing collections: %v\n", err)
		return
	}
	if len(names) == 0 {
		fmt.Println("\nNo collections found")
		return
	}
	fmt.Println("\nExisting collections:")
	for _, name := range names {
		fmt.Printf("  • %s\n", name)
	}
}

func banner() {
	fmt.Println(strings.Repeat("=", 60))
}
