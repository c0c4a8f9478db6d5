package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/openkraft/javaqc/internal/adapters/inbound/cli"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
