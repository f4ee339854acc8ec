// Package cli implements the squill commands. The core engine knows nothing
// about files or terminals; configuration discovery, directory traversal, and
// rendering all live here.
package cli

import (
	"errors"
	"os"

	"github.com/squill-sql/squill"
)

// ErrViolationsFound signals a completed lint run that found problems; main
// turns it into a non-zero exit code
var ErrViolationsFound = errors.New("lint violations found")

// DefaultConfigFile is picked up from the working directory when no --config
// flag is given
const DefaultConfigFile = ".squill.yaml"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

// loadConfig resolves the configuration: an explicit --config path, the
// default config file when present, or built-in defaults
func (ctx *Context) loadConfig() (*squill.Config, error) {
	path := ctx.Config
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	return squill.LoadConfig(path)
}
