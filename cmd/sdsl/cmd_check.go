package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sdsl/sdsl/codebase"
)

func newCheckCmd() *cobra.Command {
	var diagFormat string
	var colorMode string
	var all bool

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report syntax errors in SDSL files",
		Long: `Report syntax errors in SDSL files and directories.

Directories are searched recursively for .sdsl and .sdsli files. By default
only the first error of each file is reported; --all reports one error per
failing top-level statement. Exits non-zero when any file has errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			color, err := useColor(colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			enc, err := newDiagnosticEncoder(diagFormat, cmd.OutOrStdout(), color)
			if err != nil {
				return err
			}

			files, err := collectFiles(args)
			if err != nil {
				return err
			}

			failed := 0
			for _, f := range files {
				if f.OK() && diagFormat != "json" {
					continue
				}
				errs := f.Errors
				if !all && len(errs) > 1 {
					errs = errs[:1]
				}
				if !f.OK() {
					failed++
				}
				if err := enc.Encode(f.Path, f.Content, errs); err != nil {
					return fmt.Errorf("write diagnostics: %w", err)
				}
			}
			if failed > 0 {
				if diagFormat != "json" {
					fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files have errors\n", failed, len(files))
				}
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&diagFormat, "format", "f", "caret", "diagnostics format (caret, line, json)")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize caret output (auto, always, never)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "report every failing statement, not just the first")

	return cmd
}

// collectFiles parses the named files and every source file below the
// named directories, in argument order.
func collectFiles(paths []string) ([]*codebase.FileInfo, error) {
	var files []*codebase.FileInfo
	for _, path := range paths {
		st, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if st.IsDir() {
			cb := codebase.New(path)
			if err := cb.ScanAll(); err != nil {
				return nil, fmt.Errorf("scan %s: %w", path, err)
			}
			files = append(files, cb.Files()...)
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		files = append(files, codebase.Parse(path, content))
	}
	return files, nil
}
