package ui

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/galtui/gallery"
	"github.com/qyinm/galtui/types"
)

type stubSource struct {
	catalog types.Catalog
	err     error
	cleared int
}

func (s *stubSource) LoadCatalog(context.Context) (types.Catalog, error) {
	return s.catalog, s.err
}

func (s *stubSource) ClearCache() { s.cleared++ }

func testCatalog() types.Catalog {
	return types.Catalog{
		types.NewImageEntry("cats", "cats/1-t.jpg", "cats/1.jpg", []string{"cat", "cute"}),
		types.NewImageEntry("dogs", "dogs/1-t.jpg", "dogs/1.jpg", []string{"dog"}),
		types.NewImageEntry("cats", "cats/2-t.jpg", "cats/2.jpg", []string{"kitten"}),
	}
}

func newTestModel(t *testing.T, path string) (Model, *stubSource, *bytes.Buffer) {
	t.Helper()
	src := &stubSource{catalog: testCatalog()}
	var logs bytes.Buffer
	m := NewModel(src, gallery.Options{
		Path:      path,
		AssetBase: "public",
		Logger:    log.New(&logs, "", 0),
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, catalogMsg{requestID: m.requestID, catalog: src.catalog})
	return m, src, &logs
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelAppliesCatalog(t *testing.T) {
	m, _, _ := newTestModel(t, "/")

	if m.loading {
		t.Fatal("still loading after catalog arrived")
	}
	if got := len(m.list.Items()); got != 3 {
		t.Fatalf("list items = %d, want 3", got)
	}
	want := []types.PageContext{types.Homepage, "cats", "dogs"}
	if len(m.pages) != len(want) {
		t.Fatalf("pages = %v, want %v", m.pages, want)
	}
	for i := range want {
		if m.pages[i] != want[i] {
			t.Fatalf("pages = %v, want %v", m.pages, want)
		}
	}
	if !strings.Contains(m.View(), "Cats") {
		t.Fatal("tab bar does not show the cats page")
	}
}

func TestModelIgnoresStaleCatalog(t *testing.T) {
	m, _, _ := newTestModel(t, "/cats.html")

	stale := types.Catalog{types.NewImageEntry("cats", "x.jpg", "x.jpg", nil)}
	m = update(t, m, catalogMsg{requestID: m.requestID - 1, catalog: stale})
	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("stale response changed the list: %d items", got)
	}
}

func TestModelLoadErrorKeepsList(t *testing.T) {
	m, _, logs := newTestModel(t, "/")

	cmd := m.reload(false)
	if cmd == nil {
		t.Fatal("reload returned no command")
	}
	m = update(t, m, catalogMsg{requestID: m.requestID, err: errors.New("boom")})

	if m.err == nil {
		t.Fatal("error not recorded")
	}
	if got := len(m.list.Items()); got != 3 {
		t.Fatalf("list items = %d after failed reload, want 3", got)
	}
	if !strings.Contains(logs.String(), gallery.LoadErrorMessage) {
		t.Fatalf("log = %q, want load error", logs.String())
	}
	if !strings.Contains(m.View(), "boom") {
		t.Fatal("error not shown in status bar")
	}
}

func TestModelSearch(t *testing.T) {
	m, _, _ := newTestModel(t, "/")

	m = update(t, m, runeKey('/'))
	if !m.search.Focused() {
		t.Fatal("search not focused")
	}
	for _, r := range "kit" {
		m = update(t, m, runeKey(r))
	}
	items := m.list.Items()
	if len(items) != 1 {
		t.Fatalf("visible items = %d, want 1", len(items))
	}
	if got := items[0].(thumbItem).thumb.Full; got != "public/cats/2.jpg" {
		t.Fatalf("visible image = %q", got)
	}

	// q is text while searching
	m = update(t, m, runeKey('q'))
	if m.search.Value() != "kitq" {
		t.Fatalf("search value = %q", m.search.Value())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.search.Focused() {
		t.Fatal("enter did not leave the search input")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.search.Value() != "" || len(m.list.Items()) != 3 {
		t.Fatal("esc did not clear the search")
	}
}

func TestModelModalNavigation(t *testing.T) {
	m, _, _ := newTestModel(t, "/cats.html")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	modal := m.controller.Modal()
	if !modal.IsOpen() || modal.Source() != "public/cats/1.jpg" {
		t.Fatalf("modal = %+v", modal)
	}
	if !m.surface.modalShown {
		t.Fatal("surface not told to show the modal")
	}
	if view := m.View(); !strings.Contains(view, "public/cats/1.jpg") || !strings.Contains(view, "Image 1 of 2") {
		t.Fatalf("modal view missing details:\n%s", view)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.controller.Modal().Source(); got != "public/cats/2.jpg" {
		t.Fatalf("after next: %q", got)
	}
	if m.list.Index() != 1 {
		t.Fatalf("list cursor = %d, want 1", m.list.Index())
	}
	m = update(t, m, runeKey('l'))
	if got := m.controller.Modal().Source(); got != "public/cats/1.jpg" {
		t.Fatalf("after wrap: %q", got)
	}
	m = update(t, m, runeKey('h'))
	if got := m.controller.Modal().Source(); got != "public/cats/2.jpg" {
		t.Fatalf("after prev: %q", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.controller.Modal().IsOpen() || m.surface.modalShown {
		t.Fatal("esc did not close the modal")
	}
}

func TestModelModalCloseKey(t *testing.T) {
	m, _, _ := newTestModel(t, "/")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, runeKey('x'))
	if m.controller.Modal().IsOpen() {
		t.Fatal("x did not close the modal")
	}
}

func TestModelModalMouse(t *testing.T) {
	m, _, _ := newTestModel(t, "/")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	x0, y0, w, h := m.modalRect()
	press := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}

	m = update(t, m, press(x0+w/2, y0+h/2))
	if !m.controller.Modal().IsOpen() {
		t.Fatal("click on content closed the modal")
	}

	closeX := x0 + w - 1 - ModalStyle.GetPaddingRight() - 1
	if got := m.hitTest(closeX, y0+1); got != gallery.TargetClose {
		t.Fatalf("hitTest(close) = %v, want TargetClose", got)
	}

	m = update(t, m, press(0, 0))
	if m.controller.Modal().IsOpen() {
		t.Fatal("click on backdrop did not close the modal")
	}
}

func TestModelCopyPath(t *testing.T) {
	m, _, _ := newTestModel(t, "/")
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := m.Update(runeKey('y'))
	if cmd == nil {
		t.Fatal("copy returned no command")
	}
	msg := cmd()
	if copied != "public/cats/1.jpg" {
		t.Fatalf("copied %q", copied)
	}
	m = update(t, m, msg)
	if !strings.Contains(m.statusMsg, "public/cats/1.jpg") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestModelSwitchPage(t *testing.T) {
	m, _, _ := newTestModel(t, "/")
	before := m.requestID

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("page switch returned no command")
	}
	if m.requestID != before+1 {
		t.Fatalf("requestID = %d, want %d", m.requestID, before+1)
	}
	if got := m.controller.Path(); got != "/cats.html" {
		t.Fatalf("path = %q", got)
	}

	m = update(t, m, catalogMsg{requestID: m.requestID, catalog: testCatalog()})
	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("cats page items = %d, want 2", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.controller.Path(); got != "/" {
		t.Fatalf("path after shift+tab = %q", got)
	}
}

func TestModelCatalogChangedClearsCache(t *testing.T) {
	m, src, _ := newTestModel(t, "/")
	before := m.requestID

	m = update(t, m, CatalogChangedMsg{})
	if src.cleared != 1 {
		t.Fatalf("cache cleared %d times", src.cleared)
	}
	if m.requestID != before+1 || !m.loading {
		t.Fatal("change did not start a reload")
	}
}

func TestPagesForKeepsUnknownCurrentPage(t *testing.T) {
	pages := pagesFor(testCatalog(), "birds")
	if last := pages[len(pages)-1]; last != "birds" {
		t.Fatalf("pages = %v", pages)
	}
}
