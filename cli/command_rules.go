package cli

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/squill-sql/squill/rules"
)

// RulesCmd represents the rules command, which lists the registered rules
type RulesCmd struct{}

// Run executes the rules command
func (cmd *RulesCmd) Run(ctx *Context) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Code", "Name", "Groups", "Description"})

	for _, rule := range rules.All() {
		t.AppendRow(table.Row{
			rule.Code(),
			rule.Name(),
			strings.Join(rule.Groups(), ", "),
			rule.Description(),
		})
	}

	t.Render()

	return nil
}
