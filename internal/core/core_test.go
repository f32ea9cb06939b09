package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/stylekit/internal/theme"
)

func testThemes() []theme.Theme {
	return []theme.Theme{
		{Name: "light", ColorScheme: theme.ColorSchemeLight, IsBundled: true},
		{Name: "dark", ColorScheme: theme.ColorSchemeDark, IsBundled: true},
		{Name: "Dracula", ColorScheme: theme.ColorSchemeDark, IsBundled: true},
		{Name: "brand", ColorScheme: theme.ColorSchemeLight},
		{Name: "cupcake", ColorScheme: theme.ColorSchemeLight, IsBundled: true},
	}
}

func names(themes []theme.Theme) []string {
	out := make([]string, len(themes))
	for i, t := range themes {
		out[i] = t.Name
	}
	return out
}

func TestFilter_NoFilters(t *testing.T) {
	result := Filter(testThemes(), FilterOptions{})
	assert.Equal(t, []string{"light", "dark", "Dracula", "brand", "cupcake"}, names(result))
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter(nil, FilterOptions{Scheme: theme.ColorSchemeDark}))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"dark scheme", FilterOptions{Scheme: theme.ColorSchemeDark}, []string{"dark", "Dracula"}},
		{"custom only", FilterOptions{Source: SourceCustom}, []string{"brand"}},
		{"bundled light", FilterOptions{Source: SourceBundled, Scheme: theme.ColorSchemeLight}, []string{"light", "cupcake"}},
		{"search", FilterOptions{Search: "DR"}, []string{"Dracula"}},
		{"enabled", FilterOptions{Enabled: map[string]bool{"brand": true, "dark": true}}, []string{"dark", "brand"}},
		{"limit", FilterOptions{Limit: 2}, []string{"light", "dark"}},
		{"combined", FilterOptions{Scheme: theme.ColorSchemeLight, Search: "c", Limit: 1}, []string{"cupcake"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(testThemes(), tt.opts)))
		})
	}
}

func TestParseColorScheme(t *testing.T) {
	tests := []struct {
		input   string
		want    theme.ColorScheme
		wantErr bool
	}{
		{"", "", false},
		{"any", "", false},
		{"light", theme.ColorSchemeLight, false},
		{"DARK", theme.ColorSchemeDark, false},
		{"d", theme.ColorSchemeDark, false},
		{"dim", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorScheme(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSource(t *testing.T) {
	got, err := ParseSource("user")
	require.NoError(t, err)
	assert.Equal(t, SourceCustom, got)

	got, err = ParseSource("builtin")
	require.NoError(t, err)
	assert.Equal(t, SourceBundled, got)

	_, err = ParseSource("remote")
	assert.Error(t, err)
}

func TestSort_Empty(t *testing.T) {
	var themes []theme.Theme
	Sort(themes, DefaultSortOptions())
	assert.Len(t, themes, 0)
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		opts SortOptions
		want []string
	}{
		{"catalog asc", DefaultSortOptions(), []string{"light", "dark", "Dracula", "brand", "cupcake"}},
		{"catalog desc", SortOptions{Field: SortByCatalog, Order: SortDesc}, []string{"cupcake", "brand", "Dracula", "dark", "light"}},
		{"name asc", SortOptions{Field: SortByName, Order: SortAsc}, []string{"brand", "cupcake", "dark", "Dracula", "light"}},
		{"name desc", SortOptions{Field: SortByName, Order: SortDesc}, []string{"light", "Dracula", "dark", "cupcake", "brand"}},
		{"scheme asc", SortOptions{Field: SortByScheme, Order: SortAsc}, []string{"dark", "Dracula", "brand", "cupcake", "light"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			themes := testThemes()
			Sort(themes, tt.opts)
			assert.Equal(t, tt.want, names(themes))
		})
	}
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input string
		want  SortField
	}{
		{"name", SortByName},
		{"N", SortByName},
		{"scheme", SortByScheme},
		{"color-scheme", SortByScheme},
		{"catalog", SortByCatalog},
		{"unknown", SortByCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	got, _ := ParseSortOrder("descending")
	assert.Equal(t, SortDesc, got)
	got, _ = ParseSortOrder("")
	assert.Equal(t, SortAsc, got)
}

func TestLookupByName(t *testing.T) {
	themes := testThemes()

	found := LookupByName(themes, "dracula")
	require.NotNil(t, found)
	assert.Equal(t, "Dracula", found.Name)

	assert.Nil(t, LookupByName(themes, "missing"))
}

func TestLookupByIndex(t *testing.T) {
	themes := testThemes()

	tests := []struct {
		index int
		want  string
	}{
		{1, "light"},
		{5, "cupcake"},
		{0, ""},
		{6, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		found := LookupByIndex(themes, tt.index)
		if tt.want == "" {
			assert.Nil(t, found, "index %d", tt.index)
			continue
		}
		require.NotNil(t, found, "index %d", tt.index)
		assert.Equal(t, tt.want, found.Name)
	}
}

func TestSearch(t *testing.T) {
	themes := testThemes()

	assert.Len(t, Search(themes, ""), 5)
	assert.Equal(t, []string{"dark", "Dracula", "brand"}, names(Search(themes, "d")))
	assert.Empty(t, Search(themes, "zzz"))
}

func TestSchemes(t *testing.T) {
	counts := Schemes(testThemes())
	assert.Equal(t, 3, counts[theme.ColorSchemeLight])
	assert.Equal(t, 2, counts[theme.ColorSchemeDark])
}
