package tracking

import (
	"math"
	"strconv"
	"strings"
)

// Parser turns comma separated shorthand ("s 7, sp 2, p 70.5") into Updates.
type Parser struct {
	vocab *Vocabulary
}

func NewParser(vocab *Vocabulary) *Parser {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Parser{vocab: vocab}
}

// Parse never fails. Clauses without a numeric trailing token or with an
// unknown field are dropped; a column set twice keeps the later value.
func (p *Parser) Parse(text string) *Updates {
	out := NewUpdates()
	for _, clause := range strings.Split(text, ",") {
		col, value, ok := p.TryParseClause(clause)
		if !ok {
			continue
		}
		out.Set(col, value)
	}
	return out
}

// TryParseClause parses one "<field words> <number>" clause.
func (p *Parser) TryParseClause(clause string) (Column, float64, bool) {
	tokens := strings.Fields(clause)
	if len(tokens) < 2 {
		return "", 0, false
	}
	value, ok := parseValue(tokens[len(tokens)-1])
	if !ok {
		return "", 0, false
	}
	col, ok := p.vocab.Resolve(strings.Join(tokens[:len(tokens)-1], " "))
	if !ok {
		return "", 0, false
	}
	return col, value, true
}

// parseValue accepts decimal and scientific notation with an optional sign.
// Hex floats, digit separators, NaN and infinities are rejected.
func parseValue(tok string) (float64, bool) {
	lower := strings.ToLower(strings.TrimLeft(tok, "+-"))
	if strings.HasPrefix(lower, "0x") || strings.Contains(tok, "_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
