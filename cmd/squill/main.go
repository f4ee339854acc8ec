package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/squill-sql/squill/cli"
)

// CLI represents the command-line interface
var CLI struct {
	Config  string `help:"Configuration file path"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress output" short:"q"`

	Lint    cli.LintCmd  `cmd:"" help:"Lint SQL files"`
	Fix     cli.FixCmd   `cmd:"" help:"Fix SQL files in place"`
	Parse   cli.ParseCmd `cmd:"" help:"Print the parse tree of a SQL file"`
	Rules   cli.RulesCmd `cmd:"" help:"List the available lint rules"`
	Version VersionCmd   `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("squill v0.1.0")
	return nil
}

// loadEnvFiles loads a .env file if one exists
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}

	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	return nil
}

func main() {
	if err := loadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	ctx := kong.Parse(&CLI)

	appCtx := &cli.Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
