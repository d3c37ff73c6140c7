package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"

	"github.com/viant/jstranslate/pkg/ast"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	dir, err := os.MkdirTemp("", "jstranslate-cache-*")
	assert.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return New(afs.New(), filepath.Join(dir, "ast"))
}

func TestCache_LookupMiss(t *testing.T) {
	c := newTestCache(t)
	tree, ok := c.Lookup(context.Background(), "deadbeef", "es5")
	assert.False(t, ok)
	assert.Nil(t, tree)
}

func TestCache_StoreThenLookupRoundtrips(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	tree := &ast.Node{Kind: ast.Program}

	assert.NoError(t, c.Store(ctx, "abc123", "es6", tree))

	got, ok := c.Lookup(ctx, "abc123", "es6")
	assert.True(t, ok)
	assert.Equal(t, ast.Program, got.Kind)
}

func TestCache_LookupMismatchedModeMisses(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	assert.NoError(t, c.Store(ctx, "hash1", "es5", &ast.Node{Kind: ast.Program}))

	_, ok := c.Lookup(ctx, "hash1", "es6")
	assert.False(t, ok, "an entry stored under one mode must not be served for another")
}

func TestCache_StoreOverwritesExistingEntry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.Store(ctx, "hash2", "es5", &ast.Node{Kind: ast.Program}))
	assert.NoError(t, c.Store(ctx, "hash2", "es5", &ast.Node{Kind: ast.Program, Statements: []*ast.Node{{Kind: ast.Program}}}))

	got, ok := c.Lookup(ctx, "hash2", "es5")
	assert.True(t, ok)
	assert.Len(t, got.Statements, 1)
}
