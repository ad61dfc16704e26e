package serve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"
	"github.com/stratastor/logger"
	"github.com/stratastor/vcpu/config"
	"github.com/stratastor/vcpu/internal/catalogd"
	"github.com/stratastor/vcpu/internal/constants"
	"github.com/stratastor/vcpu/internal/managers"
	"github.com/stratastor/vcpu/pkg/catalogxml"
	"github.com/stratastor/vcpu/pkg/lifecycle"
	"github.com/stratastor/vcpu/pkg/server"
)

var detached bool

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the vcpu server",
		Run:   runServe,
	}

	cmd.Flags().BoolVarP(&detached, "detach", "d", false, "Run as a daemon")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) {
	pidFile := constants.VCPUPIDFilePath
	// Check for existing instance before proceeding
	if err := lifecycle.EnsureSingleInstance(pidFile); err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}

	if detached {
		ctx := &daemon.Context{
			PidFileName: pidFile,
			PidFilePerm: 0644,
			LogFileName: filepath.Join(config.GetConfigDir(), "vcpu.log"),
			LogFilePerm: 0640,
			WorkDir:     "/",
			Umask:       027,
			Args:        []string{"vcpu", "serve"},
		}

		d, err := ctx.Reborn()
		if err != nil {
			fmt.Printf("Failed to start daemon: %v\n", err)
			os.Exit(1)
		}

		if d != nil {
			fmt.Println("vcpu is running as a daemon")
			return
		}
		defer ctx.Release()
	}

	startServer()
}

func startServer() {
	cfg := config.GetConfig()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := loadInitialCatalog(ctx, cfg); err != nil {
		fmt.Printf("Failed to load CPU catalog: %v\n", err)
		os.Exit(1)
	}

	// Register the context canceller
	lifecycle.RegisterContextCanceller(cancel)

	// Register shutdown hook for server cleanup
	lifecycle.RegisterShutdownHook(func() {
		fmt.Println("Shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			fmt.Printf("Error during server shutdown: %v\n", err)
		}
	})

	// Start handling lifecycle signals (e.g., SIGTERM, SIGHUP)
	go lifecycle.HandleSignals(ctx)

	// Start the server
	fmt.Printf("Starting vcpu server on port %d\n", cfg.Server.Port)
	if err := server.Start(ctx, cfg.Server.Port); err != nil {
		fmt.Printf("Failed to start server: %v", err)
	}
}

// loadInitialCatalog populates internal/managers with the CPU catalog
// before the server starts accepting requests, then - if Catalog.URL
// and Catalog.RefreshInterval are both set - hands off to catalogd for
// periodic re-fetches.
func loadInitialCatalog(ctx context.Context, cfg *config.Config) error {
	if cfg.Catalog.URL != "" {
		interval, err := time.ParseDuration(cfg.Catalog.RefreshInterval)
		if err != nil || interval <= 0 {
			m, err := catalogxml.LoadURL(ctx, cfg.Catalog.URL)
			if err != nil {
				return err
			}
			managers.SetCatalog(m, cfg.Catalog.URL)
			return nil
		}

		l, err := logger.NewTag(config.NewLoggerConfig(cfg), "catalogd")
		if err != nil {
			return err
		}
		refresher, err := catalogd.NewRefresher(cfg.Catalog.URL, interval, l)
		if err != nil {
			return err
		}
		if err := refresher.Start(ctx); err != nil {
			return err
		}
		lifecycle.RegisterShutdownHook(func() {
			_ = refresher.Shutdown()
		})
		return nil
	}

	m, err := catalogxml.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	managers.SetCatalog(m, cfg.Catalog.Path)
	return nil
}
