package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sdsl/format"
	"github.com/dhamidi/sdsl/sdsl/codebase"
)

func newFmtCmd() *cobra.Command {
	var write bool
	var list bool

	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Pretty-print SDSL files",
		Long: `Pretty-print SDSL files in canonical layout.

Reads from stdin when no file is given. Comments are kept. Files with
syntax errors are reported and left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				filename, source, err := readSource(cmd.InOrStdin(), nil)
				if err != nil {
					return err
				}
				out, err := formatSource(cmd, filename, source)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			failed := false
			for _, filename := range args {
				_, source, err := readSource(nil, []string{filename})
				if err != nil {
					return err
				}
				out, err := formatSource(cmd, filename, source)
				if err == errReported {
					failed = true
					continue
				}
				if err != nil {
					return err
				}
				changed := !bytes.Equal(out, source)
				switch {
				case list:
					if changed {
						fmt.Fprintln(cmd.OutOrStdout(), filename)
					}
				case write:
					if changed {
						if err := os.WriteFile(filename, out, 0o644); err != nil {
							return fmt.Errorf("write file: %w", err)
						}
					}
				default:
					if _, err := cmd.OutOrStdout().Write(out); err != nil {
						return err
					}
				}
			}
			if failed {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list files whose formatting differs")

	return cmd
}

// formatSource pretty-prints source. Parse errors are written to the
// command's stderr and reported as errReported.
func formatSource(cmd *cobra.Command, filename string, source []byte) ([]byte, error) {
	info := codebase.Parse(filename, source)
	if !info.OK() {
		color, _ := useColor("auto", cmd.ErrOrStderr())
		format.NewCaretEncoder(cmd.ErrOrStderr(), color).Encode(filename, source, info.Errors)
		return nil, errReported
	}
	var buf bytes.Buffer
	if err := format.NewPrettyPrinter(&buf).Print(info.AST, info.Comments); err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}
