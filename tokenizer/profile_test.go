package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordFor(t *testing.T) {
	profile := &LexProfile{
		Keywords: map[string]KeywordInfo{
			"SELECT": {Keyword: true, Reserved: true},
			"COUNT":  {Keyword: true, Reserved: false},
		},
	}

	tests := []struct {
		name     string
		word     string
		found    bool
		reserved bool
	}{
		{"reserved upper", "SELECT", true, true},
		{"reserved lower", "select", true, true},
		{"reserved mixed", "SeLeCt", true, true},
		{"unreserved", "count", true, false},
		{"plain identifier", "users", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := profile.KeywordFor(tt.word)
			require.Equal(t, tt.found, ok)

			if tt.found {
				assert.Equal(t, tt.reserved, info.Reserved)
			}
		})
	}
}

func TestQuoteClassification(t *testing.T) {
	profile := &LexProfile{
		IdentifierQuotes: []rune{'"'},
		StringQuotes:     []rune{'\''},
	}

	assert.True(t, profile.isIdentifierQuote('"'))
	assert.False(t, profile.isIdentifierQuote('\''))
	assert.True(t, profile.isStringQuote('\''))
	assert.False(t, profile.isStringQuote('`'))
}
