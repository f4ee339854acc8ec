package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/squill-sql/squill/dialect"
	"github.com/squill-sql/squill/parser"
	"github.com/squill-sql/squill/segment"
)

// ParseCmd represents the parse command, which dumps the parse tree of one
// file for grammar debugging
type ParseCmd struct {
	Path    string `arg:"" help:"SQL file to parse" type:"path"`
	Dialect string `help:"Override the configured dialect"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	name := config.Dialect
	if cmd.Dialect != "" {
		name = cmd.Dialect
	}

	d, err := dialect.Load(name)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Path, err)
	}

	root, problems, err := parser.Parse(string(data), d)
	if err != nil {
		return err
	}

	printTree(root, 0)

	for _, problem := range problems {
		color.Red("unparsable at %s: %q", problem.Position, problem.Raw)
	}

	return nil
}

func printTree(seg *segment.Segment, depth int) {
	indent := strings.Repeat("  ", depth)

	if seg.IsLeaf() {
		fmt.Printf("%s%s: %q\n", indent, seg.Type, seg.Token.Value)
		return
	}

	fmt.Printf("%s%s:\n", indent, seg.Type)

	for _, child := range seg.Children {
		printTree(child, depth+1)
	}
}
