// main is the entry point for the repolens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/repolens/repolens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
