package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relaysql/sqltree/tools"
)

var distinct bool

var tablesCmd = &cobra.Command{
	Use:   "tables <sql>",
	Short: "List the tables referenced by a SQL statement",
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
		logrus.Debugf("collecting tables under dialect %s", d)
		var names []string
		if distinct {
			names, err = tools.GetDistinctTables(sql, d)
		} else {
			names, err = tools.GetTables(sql, d)
		}
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	tablesCmd.Flags().BoolVar(&distinct, "distinct", false, "remove duplicate table names")
	rootCmd.AddCommand(tablesCmd)
}
