package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"polymap/internal/listing"
	"polymap/internal/surface"
)

type entryItem struct{ listing.Entry }

func (e entryItem) Title() string       { return e.Label }
func (e entryItem) Description() string { return fmt.Sprintf("%d vertices", e.Vertices) }
func (e entryItem) FilterValue() string { return e.Name }

// syncList refreshes the polygon list after the session re-rendered.
func (m *Model) syncList() {
	rev := m.session.Revision()
	if rev == m.listRev {
		return
	}
	m.listRev = rev
	entries := m.session.Entries()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem{e})
	}
	m.l.SetItems(items)
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// selectHandle moves the list cursor to h.
func (m *Model) selectHandle(h surface.Handle) {
	m.syncList()
	for i, it := range m.l.Items() {
		if e, ok := it.(entryItem); ok && e.Handle == h {
			m.l.Select(i)
			return
		}
	}
}
