package main

import (
	"os"

	"costreports/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
