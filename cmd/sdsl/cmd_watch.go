package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sdsl/sdsl/codebase"
)

func newWatchCmd() *cobra.Command {
	var diagFormat string
	var colorMode string

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Check SDSL files continuously as they change",
		Long: `Parse every SDSL file below dir, then reparse files as they are
written, created or removed and print their diagnostics. Stops on
interrupt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			color, err := useColor(colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			enc, err := newDiagnosticEncoder(diagFormat, cmd.OutOrStdout(), color)
			if err != nil {
				return err
			}

			cb := codebase.New(root)
			if err := cb.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			for _, f := range cb.Files() {
				if !f.OK() {
					enc.Encode(f.Path, f.Content, f.Errors)
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s: %d files, %d errors\n", root, len(cb.Files()), cb.ErrorCount())

			fw, err := codebase.NewFileWatcher(cb)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			done := make(chan error, 1)
			go func() { done <- fw.Run(ctx) }()

			for change := range fw.Changes() {
				switch {
				case change.Info == nil:
					fmt.Fprintf(cmd.ErrOrStderr(), "removed %s\n", change.Path)
				case change.Info.OK():
					fmt.Fprintf(cmd.ErrOrStderr(), "ok %s\n", change.Path)
				default:
					enc.Encode(change.Path, change.Info.Content, change.Info.Errors)
				}
			}
			return <-done
		},
	}

	cmd.Flags().StringVarP(&diagFormat, "format", "f", "caret", "diagnostics format (caret, line, json)")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize caret output (auto, always, never)")

	return cmd
}
