package main

import (
	"os"

	"github.com/clauselens/clauselens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
