package main

import (
	"fmt"
	"os"

	"offloadd/internal/ctl"
)

func main() {
	if err := ctl.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
