package main

import (
	"os"

	"github.com/vistafly/interviewme/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
