package main

import (
	"errors"
	"fmt"
	"os"

	"vizex/pkg/cli"
	"vizex/pkg/common"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, common.ErrConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
