// Package dialect is the registry of SQL dialect grammars. A dialect is
// declared as a patch over its parent: the effective grammar is computed by
// walking the inheritance chain from the ANSI root down, applying each
// level's rule, keyword, and lexer-profile patches to a copy of the parent's
// state. Effective dialects are computed once, validated (every rule
// reference must resolve), cached, and shared read-only across parses.
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/squill-sql/squill/grammar"
	"github.com/squill-sql/squill/tokenizer"
)

// Sentinel errors
var (
	// ErrUnknownDialect is returned when the requested dialect is not registered.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrCyclicInheritance is returned when a dialect's parent chain loops.
	ErrCyclicInheritance = errors.New("cyclic dialect inheritance")
	// ErrUnresolvedRuleReference is returned when, after all patches are
	// applied, a grammar rule references a name with no definition.
	ErrUnresolvedRuleReference = errors.New("unresolved grammar rule reference")
	// ErrDuplicateRule is returned when a patch adds a rule that already exists.
	ErrDuplicateRule = errors.New("rule already defined")
	// ErrMissingRule is returned when a patch replaces a rule that does not exist.
	ErrMissingRule = errors.New("cannot replace undefined rule")
)

// Dialect is an effective, immutable dialect: the fully patched grammar rule
// table, keyword set, bracket pairs, and lexer profile. It implements
// grammar.RuleTable.
type Dialect struct {
	name     string
	root     string // entry rule for statement matching
	rules    map[string]grammar.Definition
	keywords map[string]tokenizer.KeywordInfo
	brackets []grammar.BracketPair
	profile  tokenizer.LexProfile

	errs []error // accumulated patch errors, reported by Load
}

// Name returns the dialect name
func (d *Dialect) Name() string {
	return d.name
}

// RootRule returns the name of the entry rule for one statement
func (d *Dialect) RootRule() string {
	return d.root
}

// Rule implements grammar.RuleTable
func (d *Dialect) Rule(name string) (grammar.Definition, bool) {
	def, ok := d.rules[name]
	return def, ok
}

// Brackets returns the dialect's bracket pairs
func (d *Dialect) Brackets() []grammar.BracketPair {
	return d.brackets
}

// LexProfile returns the lexer profile for this dialect
func (d *Dialect) LexProfile() *tokenizer.LexProfile {
	return &d.profile
}

// Patch API, used by dialect build functions.

// AddRule defines a new rule; adding an existing name is a patch error
func (d *Dialect) AddRule(name, segmentType string, match grammar.Matchable) {
	if _, exists := d.rules[name]; exists {
		d.errs = append(d.errs, fmt.Errorf("%w: %s (use ReplaceRule)", ErrDuplicateRule, name))
		return
	}

	d.rules[name] = grammar.Definition{Name: name, SegmentType: segmentType, Match: match}
}

// ReplaceRule fully replaces an inherited rule; replacing an unknown name is
// a patch error (it usually means a typo in the dialect definition)
func (d *Dialect) ReplaceRule(name, segmentType string, match grammar.Matchable) {
	if _, exists := d.rules[name]; !exists {
		d.errs = append(d.errs, fmt.Errorf("%w: %s (use AddRule)", ErrMissingRule, name))
		return
	}

	d.rules[name] = grammar.Definition{Name: name, SegmentType: segmentType, Match: match}
}

// AddKeywords registers keywords, overriding inherited entries by name
func (d *Dialect) AddKeywords(reserved bool, words ...string) {
	for _, word := range words {
		d.keywords[word] = tokenizer.KeywordInfo{Keyword: true, Reserved: reserved}
	}
}

// RemoveKeywords demotes inherited keywords to plain identifiers
func (d *Dialect) RemoveKeywords(words ...string) {
	for _, word := range words {
		delete(d.keywords, word)
	}
}

// AddBracketPair registers an additional bracket pair
func (d *Dialect) AddBracketPair(start, end tokenizer.TokenType) {
	d.brackets = append(d.brackets, grammar.BracketPair{Start: start, End: end})
}

// PatchProfile adjusts the lexer profile (quoting and comment rules)
func (d *Dialect) PatchProfile(patch func(p *tokenizer.LexProfile)) {
	patch(&d.profile)
}

// Registry of dialect blueprints.

type blueprint struct {
	name   string
	parent string
	build  func(d *Dialect)
}

var (
	registryMu sync.Mutex
	registry   = map[string]blueprint{}
	cache      = map[string]*Dialect{}
)

// register wires a blueprint into the registry; called from init functions
// of the per-dialect files
func register(name, parent string, build func(d *Dialect)) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = blueprint{name: name, parent: parent, build: build}
}

// Names returns all registered dialect names, sorted
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Load returns the effective dialect for a name. Effective dialects are
// computed once and cached; concurrent loads are safe and loading the same
// name twice returns the identical object.
func Load(name string) (*Dialect, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if cached, ok := cache[name]; ok {
		return cached, nil
	}

	chain, err := inheritanceChain(name)
	if err != nil {
		return nil, err
	}

	dialect := &Dialect{
		name:     name,
		root:     RootRuleName,
		rules:    map[string]grammar.Definition{},
		keywords: map[string]tokenizer.KeywordInfo{},
	}

	// Root-to-leaf patch application
	for _, level := range chain {
		level.build(dialect)

		if len(dialect.errs) > 0 {
			return nil, fmt.Errorf("dialect %s: %w", name, errors.Join(dialect.errs...))
		}
	}

	dialect.profile.Name = name
	dialect.profile.Keywords = dialect.keywords

	if err := validate(dialect); err != nil {
		return nil, err
	}

	cache[name] = dialect

	return dialect, nil
}

// inheritanceChain returns blueprints from the root down to name, failing on
// unknown names and parent cycles
func inheritanceChain(name string) ([]blueprint, error) {
	var chain []blueprint

	seen := map[string]bool{}

	for current := name; current != ""; {
		if seen[current] {
			return nil, fmt.Errorf("%w: via %s", ErrCyclicInheritance, current)
		}

		seen[current] = true

		bp, ok := registry[current]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, current)
		}

		chain = append([]blueprint{bp}, chain...)
		current = bp.parent
	}

	return chain, nil
}

// validate checks that every Ref in the effective grammar resolves and that
// the root rule exists. This makes grammar errors load-time failures rather
// than parse-time surprises.
func validate(d *Dialect) error {
	if _, ok := d.rules[d.root]; !ok {
		return fmt.Errorf("%w: root rule %s in dialect %s", ErrUnresolvedRuleReference, d.root, d.name)
	}

	var dangling []string

	for name, def := range d.rules {
		for _, ref := range grammar.RefsIn(def.Match) {
			if _, ok := d.rules[ref]; !ok {
				dangling = append(dangling, fmt.Sprintf("%s (referenced by %s)", ref, name))
			}
		}
	}

	if len(dangling) > 0 {
		sort.Strings(dangling)
		return fmt.Errorf("%w: dialect %s: %v", ErrUnresolvedRuleReference, d.name, dangling)
	}

	return nil
}
