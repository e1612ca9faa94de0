package main

import (
	"fmt"
	"os"

	"github.com/sokinpui/treediff"
)

func main() {
	if err := treediff.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
