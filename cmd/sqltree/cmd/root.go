// Package cmd wires the sqltree CLI's subcommands, grounded on
// vippsas/sqlcode's cli/cmd root+subcommand layout.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sqltree",
		Short:        "sqltree",
		SilenceUsage: true,
		Long:         `A tool for tokenizing, parsing and pretty-printing MySQL, Presto/Trino and Redshift SQL.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	verbose    bool
	vendorFlag string
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&vendorFlag, "dialect", "mysql", "SQL dialect: mysql, presto, trino or redshift")
	return rootCmd.Execute()
}
