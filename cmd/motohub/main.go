// README: motohub CLI entry point.
package main

import (
	"os"

	"motohub/cmd/motohub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
