package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/sdsl/sdsl/codebase"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdio",
		Long: `Start a Language Server Protocol server on stdin/stdout.

The server publishes syntax diagnostics for SDSL files in the workspace
and formats documents on request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codebase.NewLSPServer(version).RunStdio()
		},
	}
}
