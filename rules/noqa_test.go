package rules

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/squill-sql/squill/dialect"
	"github.com/squill-sql/squill/parser"
)

func suppressionsFor(t *testing.T, src string) *Suppressions {
	t.Helper()

	d, err := dialect.Load("ansi")
	assert.NoError(t, err)

	root, _, err := parser.Parse(src, d)
	assert.NoError(t, err)

	return ParseSuppressions(root)
}

func TestParseNoqaDirectives(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    noqaDirective
		ok      bool
	}{
		{"bare", "-- noqa", noqaDirective{line: 1, action: "line"}, true},
		{"single code", "-- noqa: LT01", noqaDirective{line: 1, action: "line", codes: []string{"LT01"}}, true},
		{"code list", "-- noqa: LT01, CP01", noqaDirective{line: 1, action: "line", codes: []string{"LT01", "CP01"}}, true},
		{"lowercase codes", "-- noqa: lt01", noqaDirective{line: 1, action: "line", codes: []string{"LT01"}}, true},
		{"disable all", "-- noqa: disable=all", noqaDirective{line: 1, action: "disable"}, true},
		{"disable one", "-- noqa: disable=LT01", noqaDirective{line: 1, action: "disable", codes: []string{"LT01"}}, true},
		{"enable all", "-- noqa: enable=all", noqaDirective{line: 1, action: "enable"}, true},
		{"block comment", "/* noqa: CP01 */", noqaDirective{line: 1, action: "line", codes: []string{"CP01"}}, true},
		{"hash comment", "# noqa", noqaDirective{line: 1, action: "line"}, true},
		{"plain comment", "-- just a note", noqaDirective{}, false},
		{"noqa prefix word", "-- noqa something else", noqaDirective{}, false},
		{"empty code list", "-- noqa:", noqaDirective{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNoqa(tt.comment, 1)
			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSuppressedOnLine(t *testing.T) {
	s := suppressionsFor(t, "SELECT  1 -- noqa: LT01\n")

	assert.True(t, s.Suppressed("LT01", 1))
	assert.False(t, s.Suppressed("CP01", 1))
	assert.False(t, s.Suppressed("LT01", 2))
}

func TestSuppressedAllOnLine(t *testing.T) {
	s := suppressionsFor(t, "select  1 -- noqa\n")

	assert.True(t, s.Suppressed("LT01", 1))
	assert.True(t, s.Suppressed("CP01", 1))
}

func TestDisableEnableRange(t *testing.T) {
	src := "-- noqa: disable=CP01\n" +
		"select 1;\n" +
		"-- noqa: enable=CP01\n" +
		"select 2;\n"

	s := suppressionsFor(t, src)

	assert.True(t, s.Suppressed("CP01", 2))
	assert.False(t, s.Suppressed("CP01", 4))
	assert.False(t, s.Suppressed("LT01", 2))
}

func TestDisableAllRange(t *testing.T) {
	src := "-- noqa: disable=all\nselect  1;\n"

	s := suppressionsFor(t, src)

	assert.True(t, s.Suppressed("CP01", 2))
	assert.True(t, s.Suppressed("LT01", 2))
}
