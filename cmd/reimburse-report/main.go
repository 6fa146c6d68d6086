package main

import (
	"fmt"
	"os"

	"github.com/rezonia/reimburse-report/cmd/reimburse-report/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
