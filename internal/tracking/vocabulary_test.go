package tracking

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabularyResolve(t *testing.T) {
	v := DefaultVocabulary()
	cases := []struct {
		in   string
		want Column
	}{
		{"s", ColumnSuenho},
		{"sueño", ColumnSuenho},
		{"SUEÑO", ColumnSuenho},
		{"  Sueño  ", ColumnSuenho},
		{"sp", ColumnSuenhoProfundo},
		{"sueño prof", ColumnSuenhoProfundo},
		{"sueño profundo", ColumnSuenhoProfundo},
		{"p", ColumnPeso},
		{"peso", ColumnPeso},
		{"kcal", ColumnKCal},
		{"km", ColumnKMNad},
		{"km nadados", ColumnKMNad},
		{"cerve", ColumnCerve},
		{"cervezas", ColumnCerve},
		{"copete", ColumnCopete},
		{"copetes", ColumnCopete},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := v.Resolve(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	v := DefaultVocabulary()
	for _, in := range []string{"", "   ", "xyz", "hello there", "k", "c"} {
		_, ok := v.Resolve(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestResolveDecomposedEnye(t *testing.T) {
	// "sueño" typed with n + combining tilde.
	got, ok := DefaultVocabulary().Resolve("sue\u006e\u0303o")
	require.True(t, ok)
	assert.Equal(t, ColumnSuenho, got)

	got, ok = DefaultVocabulary().Resolve("sue\u006e\u0303o prof")
	require.True(t, ok)
	assert.Equal(t, ColumnSuenhoProfundo, got)
}

func TestResolveCanonicalNames(t *testing.T) {
	// Canonical names are not aliases; they resolve through whatever alias they start with.
	v := DefaultVocabulary()
	got, ok := v.Resolve("Suenho")
	require.True(t, ok)
	assert.Equal(t, ColumnSuenho, got)

	got, ok = v.Resolve("Suenho_profundo")
	require.True(t, ok)
	assert.Equal(t, ColumnSuenho, got)

	_, ok = v.Resolve("KM_Nad")
	assert.True(t, ok)
}

func TestNewVocabularyRejectsShadowedAlias(t *testing.T) {
	_, err := NewVocabulary([]Alias{
		{Alias: "s", Column: ColumnSuenho},
		{Alias: "sp", Column: ColumnSuenhoProfundo},
	})
	require.ErrorIs(t, err, ErrInvalidVocabulary)
	assert.Contains(t, err.Error(), "shadowed")
}

func TestNewVocabularyAllowsRedundantSameColumnAlias(t *testing.T) {
	v, err := NewVocabulary([]Alias{
		{Alias: "s", Column: ColumnSuenho},
		{Alias: "sueño", Column: ColumnSuenho},
	})
	require.NoError(t, err)
	got, ok := v.Resolve("sueño")
	require.True(t, ok)
	assert.Equal(t, ColumnSuenho, got)
}

func TestNewVocabularyRejectsUnknownColumn(t *testing.T) {
	_, err := NewVocabulary([]Alias{{Alias: "steps", Column: Column("Steps")}})
	require.ErrorIs(t, err, ErrInvalidVocabulary)
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestNewVocabularyRejectsEmpty(t *testing.T) {
	_, err := NewVocabulary(nil)
	require.ErrorIs(t, err, ErrInvalidVocabulary)

	_, err = NewVocabulary([]Alias{{Alias: "  ", Column: ColumnPeso}})
	require.ErrorIs(t, err, ErrInvalidVocabulary)
}

func TestLoadVocabularyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	raw := "aliases:\n  - alias: weight\n    column: Peso\n  - alias: w\n    column: Peso\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)
	got, ok := v.Resolve("Weight")
	require.True(t, ok)
	assert.Equal(t, ColumnPeso, got)

	_, ok = v.Resolve("p")
	assert.False(t, ok)
}

func TestLoadVocabularyDefaults(t *testing.T) {
	v, err := LoadVocabulary("")
	require.NoError(t, err)
	assert.Same(t, DefaultVocabulary(), v)
	assert.Len(t, v.aliases, 10)
}

func TestParseVocabularyBadYAML(t *testing.T) {
	_, err := ParseVocabulary([]byte("aliases: [this is: not valid"))
	require.ErrorIs(t, err, ErrInvalidVocabulary)
}
