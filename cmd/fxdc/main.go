package main

import (
	"os"

	"github.com/charlpcronje/fxd-coordinator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
