package tracking

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// Alias maps one user-typed field name to its canonical column.
type Alias struct {
	Alias  string `yaml:"alias"`
	Column Column `yaml:"column"`
}

type vocabularyFile struct {
	Aliases []Alias `yaml:"aliases"`
}

// Vocabulary is an immutable, ordered alias table. Resolve checks aliases in
// declaration order and returns the column of the first alias the field text
// starts with.
type Vocabulary struct {
	aliases []Alias
}

// NewVocabulary validates and freezes an alias list. An alias that is a prefix
// of a later alias with a different column would make the later one
// unreachable, so such lists are rejected.
func NewVocabulary(aliases []Alias) (*Vocabulary, error) {
	if len(aliases) == 0 {
		return nil, fmt.Errorf("%w: no aliases", ErrInvalidVocabulary)
	}
	out := make([]Alias, 0, len(aliases))
	for i, a := range aliases {
		key := normalizeField(a.Alias)
		if key == "" {
			return nil, fmt.Errorf("%w: alias %d is empty", ErrInvalidVocabulary, i)
		}
		if !a.Column.Known() {
			return nil, fmt.Errorf("%w: alias %q maps to %w %q", ErrInvalidVocabulary, key, ErrUnknownColumn, string(a.Column))
		}
		for _, prev := range out {
			if strings.HasPrefix(key, prev.Alias) && prev.Column != a.Column {
				return nil, fmt.Errorf("%w: alias %q is shadowed by earlier alias %q", ErrInvalidVocabulary, key, prev.Alias)
			}
		}
		out = append(out, Alias{Alias: key, Column: a.Column})
	}
	return &Vocabulary{aliases: out}, nil
}

// ParseVocabulary reads a YAML alias document.
func ParseVocabulary(raw []byte) (*Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVocabulary, err)
	}
	return NewVocabulary(f.Aliases)
}

// LoadVocabulary reads path, or the embedded default when path is empty.
func LoadVocabulary(path string) (*Vocabulary, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultVocabulary(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	return ParseVocabulary(raw)
}

var defaultVocabulary = mustParseVocabulary(defaultVocabularyYAML)

// DefaultVocabulary is the built-in alias table.
func DefaultVocabulary() *Vocabulary { return defaultVocabulary }

func mustParseVocabulary(raw []byte) *Vocabulary {
	v, err := ParseVocabulary(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Resolve maps field text to a column. It never fails; ok is false when no
// alias matches.
func (v *Vocabulary) Resolve(fieldText string) (Column, bool) {
	if v == nil {
		return "", false
	}
	key := normalizeField(fieldText)
	if key == "" {
		return "", false
	}
	for _, a := range v.aliases {
		if strings.HasPrefix(key, a.Alias) {
			return a.Column, true
		}
	}
	return "", false
}

func normalizeField(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
