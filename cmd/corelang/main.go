package main

import (
	"os"

	"github.com/cwbudde/corelang/cmd/corelang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
