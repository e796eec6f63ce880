package main

import (
	"os"

	"github.com/arthur-debert/lazypony/cmd/lazypony"
)

func main() {
	os.Exit(lazypony.Execute(lazypony.Options{}))
}
