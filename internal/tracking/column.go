package tracking

import "strings"

// Column is the canonical identifier a tracked metric is stored under.
type Column string

const (
	ColumnSuenho         Column = "Suenho"
	ColumnSuenhoProfundo Column = "Suenho_profundo"
	ColumnPeso           Column = "Peso"
	ColumnKCal           Column = "KCal"
	ColumnKMNad          Column = "KM_Nad"
	ColumnCerve          Column = "Cerve"
	ColumnCopete         Column = "Copete"
)

var schema = []Column{
	ColumnSuenho,
	ColumnSuenhoProfundo,
	ColumnPeso,
	ColumnKCal,
	ColumnKMNad,
	ColumnCerve,
	ColumnCopete,
}

// Columns returns the tracked metric columns in schema order.
func Columns() []Column {
	out := make([]Column, len(schema))
	copy(out, schema)
	return out
}

func (c Column) Known() bool {
	for _, k := range schema {
		if k == c {
			return true
		}
	}
	return false
}

// DBName is the storage column name (unquoted identifiers fold to lower case).
func (c Column) DBName() string {
	return strings.ToLower(string(c))
}

func (c Column) String() string { return string(c) }
