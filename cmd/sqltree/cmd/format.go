package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relaysql/sqltree/format"
	"github.com/relaysql/sqltree/parser"
)

var maxLineLength int

var formatCmd = &cobra.Command{
	Use:   "format <sql>",
	Short: "Parse a SQL statement and print it back out, reformatted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := resolveDialect()
		if err != nil {
			return err
		}
		sql, err := readSQLArg(args)
		if err != nil {
			return err
		}
		logrus.Debugf("formatting under dialect %s", d)
		stmt, err := parser.Parse(sql, d)
		if err != nil {
			return err
		}
		opts := format.DefaultOptions
		if maxLineLength > 0 {
			opts.MaxLineLength = maxLineLength
		}
		fmt.Println(format.FormatWithOptions(stmt, d, opts))
		return nil
	},
}

func init() {
	formatCmd.Flags().IntVar(&maxLineLength, "max-line-length", 0, "wrap lines longer than this (0 uses the default)")
	rootCmd.AddCommand(formatCmd)
}
