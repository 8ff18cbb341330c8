package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	mcphandler "github.com/KirkDiggler/rpg-fitness/internal/handlers/mcp"
)

var mcpUserID string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the coach tools over MCP on stdio",
	Long:  `Expose the coach tool table to an MCP client over stdin/stdout. Every call acts on the user given by --user.`,
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpUserID, "user", "", "user the tools act on")
	_ = mcpCmd.MarkFlagRequired("user")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to close storage", "error", err)
		}
	}()

	srv, err := mcphandler.NewServer(&mcphandler.Config{
		CoachService: a.coach,
		UserID:       mcpUserID,
		Version:      version,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create MCP server")
	}

	slog.Info("MCP server starting on stdio", "user_id", mcpUserID)
	return srv.Run(ctx, &sdkmcp.StdioTransport{})
}
