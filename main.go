// Package main is the entry point for the ticketsync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/starbem/ticketsync/cmd"
)

// main executes the root command and handles any errors that occur.
func main() {
	// A .env file is optional; scheduled runs get secrets from the
	// environment directly.
	godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
