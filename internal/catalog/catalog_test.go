package catalog

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/resolver"
	"github.com/coral-mesh/dtypes/internal/target"
	"github.com/coral-mesh/dtypes/internal/testutil"
	"github.com/coral-mesh/dtypes/internal/typesystem"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open("", testutil.NewTestLoggerWithOutput(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sampleRecords() []Record {
	return []Record{
		{ID: 0x2d, Name: "int", ByteSize: 4, BitSize: 32, Kind: "int", State: "full", EncodingID: -1},
		{ID: 0x40, Name: "myint", ByteSize: 4, BitSize: 32, Kind: "int", State: "unresolved", EncodingID: 0x2d, EncodingKind: "typedef"},
	}
}

func TestCatalog_SaveAndList(t *testing.T) {
	ctx := testutil.NewTestContext(t)
	c := newCatalog(t)

	has, err := c.HasBinary(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, has)

	run, err := c.Save(ctx, "/bin/app", "abc", "x86_64-unknown-linux-gnu", sampleRecords(), false)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, int64(2), run.TypeCount)

	has, err = c.HasBinary(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, has)

	recs, err := c.List(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "int", recs[0].Name)
	assert.Equal(t, "myint", recs[1].Name)
	assert.Equal(t, run.RunID, recs[1].RunID)
	assert.Equal(t, "abc", recs[1].BinaryHash)

	runs, err := c.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "/bin/app", runs[0].BinaryPath)
}

func TestCatalog_SaveSkipsKnownBinary(t *testing.T) {
	ctx := testutil.NewTestContext(t)
	c := newCatalog(t)

	_, err := c.Save(ctx, "/bin/app", "abc", "", sampleRecords(), false)
	require.NoError(t, err)

	run, err := c.Save(ctx, "/bin/app", "abc", "", sampleRecords()[:1], false)
	require.NoError(t, err)
	assert.Nil(t, run)

	forced, err := c.Save(ctx, "/bin/app", "abc", "", sampleRecords()[:1], true)
	require.NoError(t, err)
	require.NotNil(t, forced)

	runs, err := c.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	recs, err := c.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestCatalog_Lookup(t *testing.T) {
	ctx := testutil.NewTestContext(t)
	c := newCatalog(t)

	_, err := c.Save(ctx, "/bin/app", "abc", "", sampleRecords(), false)
	require.NoError(t, err)

	rec, err := c.Lookup(ctx, "abc", "myint")
	require.NoError(t, err)
	assert.Equal(t, int64(0x2d), rec.EncodingID)

	_, err = c.Lookup(ctx, "abc", "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.Lookup(ctx, "other", "myint")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNewRecord(t *testing.T) {
	m := dwarfinfo.NewMemory()
	intEntry := m.Base("int", dwarfinfo.EncSigned, 4)
	alias := m.Typedef("myint", intEntry)
	dangling := m.Typedef("broken", nil)

	ts := typesystem.New(target.MustParseTriple("x86_64-unknown-linux-gnu"), zerolog.Nop())
	r := resolver.New(m, ts, resolver.Config{}, zerolog.Nop())

	tests := []struct {
		name  string
		entry dwarfinfo.Entry
		want  Record
	}{
		{
			name:  "base type",
			entry: intEntry,
			want: Record{
				ID: int64(intEntry.ID()), Name: "int", ByteSize: 4, BitSize: 32,
				Kind: "int", Format: "decimal", Encoding: "sint", BasicType: "int",
				State: "full", EncodingID: -1, EncodingKind: "uid",
			},
		},
		{
			name:  "typedef takes layout from underlying",
			entry: alias,
			want: Record{
				ID: int64(alias.ID()), Name: "myint", ByteSize: 4, BitSize: 32,
				Kind: "int", Format: "decimal", Encoding: "sint", BasicType: "int",
				State: "unresolved", EncodingID: int64(intEntry.ID()), EncodingKind: "typedef",
			},
		},
		{
			name:  "dangling typedef",
			entry: dangling,
			want: Record{
				ID: int64(dangling.ID()), Name: "broken", ByteSize: -1, BitSize: -1,
				State: "unresolved", EncodingID: -1, EncodingKind: "typedef",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := r.Resolve(tt.entry)
			require.NotNil(t, typ)
			assert.Equal(t, tt.want, NewRecord(r, typ))
		})
	}
}
