package main

import (
	"os"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
