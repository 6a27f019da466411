package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/muonworks/muontickets/internal/cli"
)

// Exit codes: 0 success, 1 validation or unexpected failure, 2
// precondition refusal, 3 no claimable ticket.
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		os.Exit(1)
	}
}
