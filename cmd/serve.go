package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nahcub/call-bot/internal/chat"
	"github.com/nahcub/call-bot/internal/config"
	"github.com/nahcub/call-bot/internal/db"
	"github.com/nahcub/call-bot/internal/llm"
	"github.com/nahcub/call-bot/internal/outbound"
	"github.com/nahcub/call-bot/internal/server"
	"github.com/nahcub/call-bot/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the call-bot HTTP server",
	Long:  `Starts the call-bot server with the chat API, WebSocket endpoint, and outbound call placement.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("openai_api_key is required (set it in %s or CALLBOT_OPENAI_API_KEY)", cfgFile)
		}
		if err := cfg.ValidateForCalls(); err != nil {
			// The chat surface still works; only /call will fail.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, "callbot.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		provider := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model)
		engine := chat.NewEngine(session.NewStore(database), provider, cfg.Model)

		dialer := outbound.NewClient(outbound.Config{
			APIKey:        cfg.ElevenLabsAPIKey,
			AgentID:       cfg.ElevenLabsAgentID,
			PhoneNumberID: cfg.ElevenLabsPhoneNumberID,
		})

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllCORS,
		})
		chat.RegisterRoutes(srv.Router(), engine, dialer)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "callbot server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Model: %s (%s)\n", cfg.Model, provider.Name())

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
