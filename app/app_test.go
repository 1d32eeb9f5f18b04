package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"neoshelf/shelf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memState is an in-memory stand-in for config.State.
type memState struct {
	shelves json.RawMessage
	active  string
}

func (m *memState) SaveShelves(data json.RawMessage) error { m.shelves = data; return nil }
func (m *memState) GetShelves() json.RawMessage            { return m.shelves }
func (m *memState) DeleteAllShelves() error                { m.shelves = nil; return nil }
func (m *memState) GetActiveShelf() string                 { return m.active }
func (m *memState) SetActiveShelf(name string) error       { m.active = name; return nil }

func newTestCatalogue(t *testing.T) *shelf.Catalogue {
	t.Helper()
	st := &memState{}
	cat, err := shelf.NewCatalogue(st, st)
	require.NoError(t, err)
	return cat
}

const toolsShelf = `global proc shelf_Tools () {
    shelfButton
        -label "sphere"
        -annotation "make a sphere"
        -command "cmds.polySphere()"
        -sourceType "python"
    ;
    separator
        -style "shelf"
    ;
    shelfButton
        -label "cube"
        -command "polyCube;"
        -sourceType "mel"
    ;
}
`

const animShelf = `global proc shelf_Anim () {
    shelfButton
        -label "key"
        -command "cmds.setKeyframe()"
        -sourceType "python"
    ;
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportFiles(t *testing.T) {
	cat := newTestCatalogue(t)
	dir := t.TempDir()
	good1 := writeFile(t, dir, "shelf_Tools.mel", toolsShelf)
	good2 := writeFile(t, dir, "shelf_Anim.mel", animShelf)
	bad := writeFile(t, dir, "broken.mel", "// not a shelf file\n")

	imported, failures := ImportFiles(context.Background(), cat, []string{good1, bad, good2})

	assert.Equal(t, []string{"Tools", "Anim"}, imported)
	require.Len(t, failures, 1)
	assert.Equal(t, bad, failures[0].Path)

	tools := cat.Get("Tools")
	require.NotNil(t, tools)
	require.Len(t, tools.Items, 3)
	btn, ok := tools.Items[0].(*shelf.Button)
	require.True(t, ok)
	assert.Equal(t, "sphere", btn.Name)
	assert.Equal(t, shelf.KindPython, btn.Kind)
	_, ok = tools.Items[1].(*shelf.Separator)
	assert.True(t, ok)
}

func TestImportFilesMissingPath(t *testing.T) {
	cat := newTestCatalogue(t)

	imported, failures := ImportFiles(context.Background(), cat,
		[]string{filepath.Join(t.TempDir(), "nope.mel")})

	assert.Empty(t, imported)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Error(), "nope.mel")
}

func TestImportFilesDeduplicatesNames(t *testing.T) {
	cat := newTestCatalogue(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "shelf_Tools.mel", toolsShelf)

	first, failures := ImportFiles(context.Background(), cat, []string{path})
	require.Empty(t, failures)
	second, failures := ImportFiles(context.Background(), cat, []string{path})
	require.Empty(t, failures)

	assert.Equal(t, []string{"Tools"}, first)
	assert.Equal(t, []string{"Tools_1"}, second, "re-import gets a numeric suffix")
	assert.Len(t, cat.Get("Tools_1").Items, 3)
}

func TestImportFilesBatchDedup(t *testing.T) {
	cat := newTestCatalogue(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.mel", toolsShelf)
	b := writeFile(t, dir, "b.mel", toolsShelf)

	imported, failures := ImportFiles(context.Background(), cat, []string{a, b})
	require.Empty(t, failures)
	assert.Equal(t, []string{"Tools", "Tools_1"}, imported,
		"two files with the same shelf name both land")
}

func TestExportShelfRoundTrip(t *testing.T) {
	cat := newTestCatalogue(t)
	dir := t.TempDir()
	src := writeFile(t, dir, "shelf_Tools.mel", toolsShelf)

	imported, failures := ImportFiles(context.Background(), cat, []string{src})
	require.Empty(t, failures)
	require.Equal(t, []string{"Tools"}, imported)

	out := filepath.Join(dir, "out.mel")
	require.NoError(t, ExportShelf(cat, "Tools", out))

	reimported, failures := ImportFiles(context.Background(), cat, []string{out})
	require.Empty(t, failures)
	require.Equal(t, []string{"Tools_1"}, reimported)
	assert.Equal(t, cat.Get("Tools").Items, cat.Get("Tools_1").Items)
}

func TestDeliverTimerNeverBlocks(t *testing.T) {
	h := &home{timerCh: make(chan func(), 2)}

	h.deliverTimer(func() {})
	h.deliverTimer(func() {})
	require.Len(t, h.timerCh, 2)

	// With the buffer full and no drain running, delivery must drop the
	// callback rather than block the timer goroutine.
	done := make(chan struct{})
	go func() {
		h.deliverTimer(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deliverTimer blocked on a full channel")
	}
	assert.Len(t, h.timerCh, 2)
}

func TestExportShelfUnknown(t *testing.T) {
	cat := newTestCatalogue(t)
	e := ExportShelf(cat, "missing", filepath.Join(t.TempDir(), "out.mel"))
	assert.Error(t, e)
}
