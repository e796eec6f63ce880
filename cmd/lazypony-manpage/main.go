package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/lazypony/cmd/lazypony"
)

func main() {
	rootCmd := lazypony.NewRootCmd()

	if err := doc.GenMan(rootCmd, lazypony.ManHeader(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
