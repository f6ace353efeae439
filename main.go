package main

import (
	"os"

	"flexgen/cmd"
)

// @title        Flexgen API
// @version      1.0
// @description  Humblebrag social post generator.
// @BasePath     /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
