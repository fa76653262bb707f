package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(m DocumentListModel, msgs ...tea.KeyMsg) DocumentListModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(DocumentListModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDocumentListModel(t *testing.T) {
	keys := []string{"layout/main", "layout/row", "layout-land/main"}

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{"first", []tea.KeyMsg{{Type: tea.KeyEnter}}, "layout/main"},
		{"down", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, "layout/row"},
		{"down past end", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, "layout-land/main"},
		{"up at top", []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}}, "layout/main"},
		{"filter", []tea.KeyMsg{runes("land"), {Type: tea.KeyEnter}}, "layout-land/main"},
		{"filter backspace", []tea.KeyMsg{runes("rowx"), {Type: tea.KeyBackspace}, {Type: tea.KeyEnter}}, "layout/row"},
		{"no match", []tea.KeyMsg{runes("zzz"), {Type: tea.KeyEnter}}, ""},
		{"quit", []tea.KeyMsg{{Type: tea.KeyEsc}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewDocumentListModel("Select Layout", keys), tt.keys...)
			if m.Selected != tt.want {
				t.Errorf("Selected = %q, want %q", m.Selected, tt.want)
			}
		})
	}
}

func TestDocumentListModelView(t *testing.T) {
	m := NewDocumentListModel("Select Layout", []string{"layout/main", "layout/row"})
	view := m.View()
	for _, want := range []string{"Select Layout", "layout/main", "layout/row", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	m = press(m, runes("zzz"))
	if !strings.Contains(m.View(), "no matches") {
		t.Error("View() should say when the filter matches nothing")
	}
}

func TestDocumentListModelWindowSize(t *testing.T) {
	m := NewDocumentListModel("t", nil)
	next, _ := m.Update(tea.WindowSizeMsg{Height: 3})
	if got := next.(DocumentListModel).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}
