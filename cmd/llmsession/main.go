package main

import (
	"fmt"
	"os"

	"github.com/soyeahso/llmsession/internal/cli"
	"github.com/tillberg/autorestart"
)

func main() {
	// Long-running chat sessions during development can opt in to
	// restarting when the binary is rebuilt.
	if os.Getenv("LLMSESSION_AUTORESTART") == "1" {
		go autorestart.RestartOnChange()
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
