package cmd

import (
	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relaysql/sqltree/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <sql>",
	Short: "Parse a SQL statement and dump its concrete syntax tree",
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
		logrus.Debugf("parsing under dialect %s", d)
		stmt, err := parser.Parse(sql, d)
		if err != nil {
			return err
		}
		pp.Println(stmt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
