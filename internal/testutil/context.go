// Package testutil provides helpers shared by the package tests.
package testutil

import (
	"context"
	"testing"
	"time"
)

// NewTestContext returns a context that is cancelled after ten seconds or
// when t finishes, whichever comes first.
func NewTestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
