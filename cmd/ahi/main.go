package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "ahi",
		Short: "Grammar development tools for sdsl",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more; repeat for debug output")

	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newTokensCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
