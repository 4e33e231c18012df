package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront-client/config"
	"storefront-client/internal/cookies"
	"storefront-client/internal/gateway/rest"
	"storefront-client/internal/infrastructure/cache"
	"storefront-client/internal/usecase"
	"storefront-client/internal/view"
	"storefront-client/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	clientName    = "storefront"
	clientVersion = "1.0.0"
)

// Wired in PersistentPreRunE, shared by all subcommands.
var (
	cfg     *config.Config
	client  *rest.Client
	appView *view.View
	banner  *view.Banner
	session *usecase.CartSession
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Headless client for the storefront cart, review and comparison APIs",
	Long: `storefront drives the shop backend the way the site's pages do:
every mutation goes out with the session's anti-forgery token and the
displayed cart state is re-fetched from the server after each confirmed
change, never computed locally.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()
		logger.Init(cfg.Env, cfg.LogLevel)

		raw := cfg.Cookies
		if cfg.CookieFile != "" {
			loaded, err := cookies.LoadFile(cfg.CookieFile)
			if err != nil {
				return fmt.Errorf("load cookie file: %w", err)
			}
			raw = loaded
		}
		tokens := cookies.NewTokenSource(raw, cfg.CSRFCookieName)

		client = rest.NewClient(cfg.BaseURL, rest.Paths{
			Cart:             cfg.CartAPIPath,
			Reviews:          cfg.ReviewAPIPath,
			ComparisonAdd:    cfg.ComparisonAddPath,
			ComparisonRemove: cfg.ComparisonRemovePath,
		}, tokens, cfg.RequestTimeout)

		appView = view.New()
		banner = view.NewBanner(printBanner, 0)

		// Summary cache: cleanup sweep at double the TTL
		store := cache.NewMemoryCache(cfg.SummaryTTL, 2*cfg.SummaryTTL)
		session = usecase.NewCartSession(client, appView, banner, store, cfg)

		logger.ClientStart(clientName, clientVersion, cfg.BaseURL)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if session != nil {
			session.Close()
		}
		logger.ClientStop(clientName)
	},
}

func printBanner(m view.Message) {
	fmt.Printf("[%s] %s: %s\n", m.Severity, m.Title, m.Text)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(cartCmd, reviewCmd, comparisonCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
