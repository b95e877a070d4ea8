package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sdsl/grammar"
)

func newTokensCmd() *cobra.Command {
	var grammarFile string
	var all bool

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Split a source file into tokens using the grammar's lexical productions",
		Long: `Split a source file into tokens using the lexical productions of the
built-in SDSL grammar, or of --grammar. Reads stdin when no file is given.
Whitespace and comments are hidden unless --all is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g *grammar.Grammar
			var err error
			if grammarFile != "" {
				g, err = grammar.LoadFile(grammarFile)
			} else {
				g, err = grammar.Default()
			}
			if err != nil {
				return err
			}

			filename := "<stdin>"
			var input []byte
			if len(args) == 1 {
				filename = args[0]
				input, err = os.ReadFile(filename)
			} else {
				input, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			tokens := grammar.NewLexer(g, input, filename).Tokenize()
			if !all {
				tokens = grammar.Significant(tokens)
			}
			bad := 0
			for _, tok := range tokens {
				if tok.Kind == grammar.ErrorKind {
					bad++
				}
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			if bad > 0 {
				return fmt.Errorf("%d unrecognized bytes", bad)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "EBNF grammar file (defaults to the built-in SDSL grammar)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include whitespace and comment tokens")

	return cmd
}
