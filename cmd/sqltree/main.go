package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/relaysql/sqltree/cmd/sqltree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logrus.StandardLogger().Error(err)
		os.Exit(1)
	}
}
