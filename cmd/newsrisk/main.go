// newsrisk turns a month of cyber-risk news into a summary, action points and
// per-action project plans, and converts claim notes and reinsurance contracts
// to JSON.
//
// Usage:
//
//	newsrisk run [--config=<path>]
//	newsrisk schedule [--interval=24h]
//	newsrisk convert claims|contracts
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
