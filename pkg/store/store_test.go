package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/compiler"
	"github.com/chazu/seed/pkg/samples"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "chunks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func compileSample(t *testing.T, name string) *bytecode.Chunk {
	t.Helper()
	smp, ok := samples.Lookup(name)
	require.True(t, ok)
	chunk, err := compiler.Compile(smp.Build(), compiler.Options{})
	require.NoError(t, err)
	return chunk
}

func TestPutGet(t *testing.T) {
	s := openTemp(t)
	chunk := compileSample(t, "fib")

	hash, err := s.Put(chunk)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	got, err := s.Get(hash)
	require.NoError(t, err)
	assert.Equal(t, chunk.Disassemble(), got.Disassemble())

	ok, err := s.Has(hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPutIsContentAddressed(t *testing.T) {
	s := openTemp(t)
	h1, err := s.Put(compileSample(t, "sum"))
	require.NoError(t, err)
	h2, err := s.Put(compileSample(t, "sum"))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := s.Put(compileSample(t, "swap"))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	names := []string{entries[0].Name, entries[1].Name}
	assert.ElementsMatch(t, []string{"sum", "swap"}, names)
}

func TestGetByPrefix(t *testing.T) {
	s := openTemp(t)
	hash, err := s.Put(compileSample(t, "logic"))
	require.NoError(t, err)

	got, err := s.Get(hash[:10])
	require.NoError(t, err)
	assert.Equal(t, "logic", got.Name)
}

func TestGetMissing(t *testing.T) {
	s := openTemp(t)
	_, err := s.Get("deadbeef")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Get("")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCorruptDataRejected(t *testing.T) {
	s := openTemp(t)
	hash, err := s.Put(compileSample(t, "sum"))
	require.NoError(t, err)

	_, err = s.db.Exec("UPDATE chunks SET data = ? WHERE hash = ?", []byte("garbage"), hash)
	require.NoError(t, err)
	_, err = s.Get(hash)
	assert.ErrorContains(t, err, "corrupt")
}

func TestGetValidatesEncoding(t *testing.T) {
	s := openTemp(t)
	hash, err := s.PutEncoded("junk", []byte("not a chunk"))
	require.NoError(t, err)
	_, err = s.Get(hash)
	assert.ErrorContains(t, err, "decoding chunk")
}

func TestDelete(t *testing.T) {
	s := openTemp(t)
	hash, err := s.Put(compileSample(t, "sum"))
	require.NoError(t, err)

	removed, err := s.Delete(hash)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Delete(hash)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestReopenKeepsChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.db")
	s, err := Open(path)
	require.NoError(t, err)
	hash, err := s.Put(compileSample(t, "counter"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(hash)
	require.NoError(t, err)
	assert.Equal(t, "counter", got.Name)
}

func TestMemoryStore(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()
	hash, err := s.Put(compileSample(t, "sum"))
	require.NoError(t, err)
	ok, err := s.Has(hash)
	require.NoError(t, err)
	assert.True(t, ok)
}
