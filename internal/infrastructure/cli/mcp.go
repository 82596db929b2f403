package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	inframcp "github.com/felixgeelhaar/hashdraft/internal/infrastructure/mcp"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the hashdraft MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("HASHDRAFT_SKIP_MCP_START") == "true" {
			return nil
		}
		// stdout carries the protocol on stdio.
		svc, _, err := loadDraftService(os.Stderr)
		if err != nil {
			return err
		}
		inframcp.Version, inframcp.BuildCommit, inframcp.BuildDate = Version, Commit, Date
		server := inframcp.NewServer(svc)
		ctx := commandContext(cmd)
		switch strings.ToLower(mcpTransport) {
		case "stdio", "":
			err = server.ServeStdio(ctx)
		case "http":
			err = server.ServeHTTP(ctx, mcpAddr)
		default:
			err = fmt.Errorf("unsupported transport: %s", mcpTransport)
		}
		return err
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8081", "Address for the http transport")
	RootCmd.AddCommand(mcpCmd)
}
