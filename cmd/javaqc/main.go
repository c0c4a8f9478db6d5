package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/openkraft/javaqc/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.Execute()
	if err == nil {
		return 0
	}
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}
