package main

import (
	"os"

	"go-medical-scheduling/cmd/cli"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := cli.Execute(); err != nil {
		logrus.Errorf("scheduler: %v", err)
		os.Exit(1)
	}
}
