package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// shopSource is a package with an abstract type, a transient named component
// extending it, and a singleton with an erroring no-arg constructor.
const shopSource = `package shop

import "github.com/sghaida/smartdi/di"

// Store is the storage abstraction.
//
//di:type
type Store interface{ Get(key string) string }

// MemStore keeps items in memory.
//
//di:component name=mem transient
//di:extends Store
type MemStore struct{ items map[string]string }

func NewMemStore(opts di.Options) *MemStore {
	return &MemStore{items: map[string]string{}}
}

func (m *MemStore) Get(key string) string { return m.items[key] }

//di:component
type Service struct {
	Store Store ` + "`di:\"mem\"`" + `
}

func NewService() (*Service, error) { return &Service{}, nil }

type ignored struct{}
`

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writePackage creates a temp package directory with the given files.
func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeTempFile(t, dir, name, content)
	}
	return dir
}

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// squash collapses whitespace runs so assertions do not depend on gofmt alignment.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error { return f.closeErr }

// restoreWriteSeams puts the real file hooks back when the test ends.
func restoreWriteSeams(t *testing.T) {
	t.Helper()
	create, remove, chmod, rename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile, removeFile, chmodFile, renameFile = create, remove, chmod, rename
	})
}
