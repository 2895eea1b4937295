package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfo_Short(t *testing.T) {
	tests := []struct {
		name   string
		info   Info
		expect string
	}{
		{"long commit", Info{Version: "1.2.0", GitCommit: "0123456789abcdef"}, "dtypes 1.2.0 (0123456)"},
		{"short commit", Info{Version: "dev", GitCommit: "unknown"}, "dtypes dev (unknown)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.info.Short())
		})
	}
}
