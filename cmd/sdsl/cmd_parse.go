package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sdsl/format"
	"github.com/dhamidi/sdsl/sdsl/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var expression bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an SDSL file and dump its syntax tree",
		Long: `Parse an SDSL file and dump its syntax tree.

Reads from stdin when no file is given. With --expr the input is parsed as
a single expression instead of a list of statements.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, source, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewASTJSONEncoder(cmd.OutOrStdout())
			case "tree":
				encoder = format.NewTreeEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			opts := []parser.Option{parser.WithFile(filename)}
			if maxDepth > 0 {
				opts = append(opts, parser.WithMaxDepth(maxDepth))
			}
			var p *parser.Parser
			if expression {
				p = parser.ParseExpression(bytes.NewReader(source), opts...)
			} else {
				p = parser.ParseStatements(bytes.NewReader(source), opts...)
			}
			node := p.Finish()
			if node == nil {
				if len(p.Errors()) == 0 {
					return fmt.Errorf("parse %s: %w", filename, p.Err())
				}
				color, _ := useColor("auto", cmd.ErrOrStderr())
				format.NewCaretEncoder(cmd.ErrOrStderr(), color).Encode(filename, source, p.Errors())
				return errReported
			}

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&expression, "expr", false, "parse a single expression")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 keeps the parser default)")

	return cmd
}
