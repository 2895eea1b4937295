package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilter_Rejects(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "syntax error", expr: "kind ==="},
		{name: "unknown variable", expr: "colour == \"red\""},
		{name: "not a bool", expr: "byte_size + 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFilter(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		expr string
		want []string
	}{
		{expr: `state == "full"`, want: []string{"int"}},
		{expr: `byte_size >= 4 && kind == "int"`, want: []string{"int", "myint"}},
		{expr: `name.startsWith("my")`, want: []string{"myint"}},
		{expr: `encoding_kind == "typedef" && encoding_offset == 45`, want: []string{"myint"}},
		{expr: `false`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := NewFilter(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.String())

			got, err := f.Apply(records)
			require.NoError(t, err)
			var names []string
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilter_NilMatchesAll(t *testing.T) {
	var f *Filter
	got, err := f.Apply(sampleRecords())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
