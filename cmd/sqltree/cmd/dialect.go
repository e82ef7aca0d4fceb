package cmd

import (
	"fmt"
	"strings"

	"github.com/relaysql/sqltree/dialect"
)

func resolveDialect() (dialect.Dialect, error) {
	switch strings.ToLower(vendorFlag) {
	case "mysql":
		return dialect.Dialect{Vendor: dialect.MySQL}, nil
	case "presto":
		return dialect.Dialect{Vendor: dialect.Presto}, nil
	case "trino":
		return dialect.Dialect{Vendor: dialect.Presto, TrinoExtensions: true}, nil
	case "redshift":
		return dialect.Dialect{Vendor: dialect.Redshift}, nil
	default:
		return dialect.Dialect{}, fmt.Errorf("unknown --dialect %q: want mysql, presto, trino or redshift", vendorFlag)
	}
}

func readSQLArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one SQL argument")
	}
	return args[0], nil
}
