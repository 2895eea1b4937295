package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-mesh/dtypes/internal/constants"
	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/target"
	"github.com/coral-mesh/dtypes/pkg/version"
)

// run executes the command tree with a private config directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(constants.ConfigDirEnv, t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestKindsCmd_JSON(t *testing.T) {
	out, err := run(t, "kinds", "--target", "x86_64-unknown-linux-gnu", "--format", "json")
	require.NoError(t, err)

	var rows []kindRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))

	byKind := make(map[string]kindRow)
	for _, r := range rows {
		byKind[r.Kind] = r
	}
	assert.Equal(t, "80", byKind["real"].Bits)
	assert.Equal(t, "64", byKind["pointer"].Bits)
	assert.Equal(t, "128", byKind["slice"].Bits)
	assert.Equal(t, "-", byKind["void"].Bits)
	assert.Equal(t, "creal", byKind["creal80"].Name)
}

func TestKindsCmd_TargetDependence(t *testing.T) {
	tests := []struct {
		triple string
		real   string
	}{
		{triple: "x86_64-pc-windows-msvc", real: "64"},
		{triple: "aarch64-unknown-linux-gnu", real: "128"},
		{triple: "aarch64-apple-darwin", real: "64"},
		{triple: "i686-unknown-linux-gnu", real: "80"},
	}
	for _, tt := range tests {
		t.Run(tt.triple, func(t *testing.T) {
			rows := kindRows(target.MustParseTriple(tt.triple))
			for _, r := range rows {
				if r.Kind == "real" {
					assert.Equal(t, tt.real, r.Bits)
				}
			}
		})
	}
}

func TestKindsCmd_BadTarget(t *testing.T) {
	_, err := run(t, "kinds", "--target", "")
	require.NoError(t, err)

	_, err = run(t, "kinds", "--target", "nonsense-arch")
	assert.Error(t, err)
}

func TestRootCmd_RejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "kinds", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, "config", "show", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "level: debug")
	assert.Contains(t, out, "max_depth: 1024")

	out, err = run(t, "config", "schema")
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, schema, "properties")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dtypes "+version.Version)

	out, err = run(t, "version", "-o", "json")
	require.NoError(t, err)
	var infos []version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, version.Version, infos[0].Version)
}

func TestResolveCmd_Errors(t *testing.T) {
	_, err := run(t, "resolve", "/does/not/exist", "--name", "int")
	assert.Error(t, err)

	_, err = run(t, "resolve", "/does/not/exist")
	assert.Error(t, err, "one of --name or --offset is required")
}

func TestResolveCmd_OwnBinary(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)
	bin, err := dwarfinfo.Open(exe, zerolog.Nop())
	if err != nil {
		t.Skipf("test binary has no usable debug info: %v", err)
	}
	found := len(bin.Data.LookupType("uint8")) > 0
	_ = bin.Close()
	if !found {
		t.Skip("test binary has no uint8 base type")
	}

	out, err := run(t, "resolve", exe, "--name", "uint8", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "uint8")
	assert.Contains(t, out, "full")
}
