// main is the entry point for the prlens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/prlens/cmd"
	"github.com/huangsam/prlens/internal/contract"
	"github.com/huangsam/prlens/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(contract.ExitCode(err))
	}
}
