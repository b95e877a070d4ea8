package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sdsl/grammar"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfPrintCmd())
	cmd.AddCommand(newEbnfLiteralsCmd())

	return cmd
}

// loadGrammar loads the grammar named by args, or the embedded SDSL
// grammar when args is empty.
func loadGrammar(args []string) (*grammar.Grammar, error) {
	if len(args) == 0 {
		return grammar.Default()
	}
	return grammar.LoadFile(args[0])
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string
	var tokenStart string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file",
		Long: `Parse and verify an EBNF grammar file, or the built-in SDSL grammar
when no file is given.

Productions reachable from --start are verified as syntax, those reachable
from --token-start as lexical productions. Productions neither root
reaches are reported as unreachable.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args)
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			g.Start = startProduction
			g.TokenStart = tokenStart

			if err := g.Verify(); err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d productions ok\n", g.Filename, len(g.Productions))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.DefaultStart, "start production of the syntax")
	cmd.Flags().StringVar(&tokenStart, "token-start", grammar.DefaultTokenStart, "production listing the token kinds (empty skips lexical checks)")

	return cmd
}

func newEbnfPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in SDSL grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}
}

func newEbnfLiteralsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "literals [file]",
		Short: "List the keywords, operators and punctuation of a grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args)
			if err != nil {
				return err
			}
			for _, lit := range g.Literals() {
				fmt.Fprintln(cmd.OutOrStdout(), lit)
			}
			return nil
		},
	}
}

// printErrors prints one line per error. ebnf reports a scanner.ErrorList
// and Verify joins several of them.
func printErrors(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printErrors(w, e)
		}
		return
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
