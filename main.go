package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/storeresize-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "[storeresize] error:", err)
		os.Exit(1)
	}
}
