// Package main renders the portfolio page to static files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the portfolio page to static files",
	Long:  "Renders index.html and projects.rss from the configured profile so the page can be hosted without the server.",
	RunE:  runExport,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
