package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/scenario"
	"github.com/vanderheijden86/playbook/pkg/session"
	"github.com/vanderheijden86/playbook/pkg/testutil"
	"github.com/vanderheijden86/playbook/pkg/watcher"
)

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	sess := session.New(content.MustDefault())
	opts = append([]Option{WithTheme(DefaultTheme(lipgloss.NewRenderer(nil)))}, opts...)
	m := NewModel(sess, opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestTopicKeys(t *testing.T) {
	m := newTestModel(t)

	steps := []struct {
		key  string
		want content.Topic
	}{
		{"2", content.TopicConversion},
		{"3", content.TopicTicketSize},
		{"]", content.TopicTraffic}, // wraps
		{"[", content.TopicTicketSize},
		{"1", content.TopicTraffic},
	}
	for _, s := range steps {
		m = press(t, m, s.key)
		if got := m.Session().ActiveTopic(); got != s.want {
			t.Fatalf("after %q: expected %s, got %s", s.key, s.want, got)
		}
	}
}

func TestToggleChecklistItem(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "space")
	if !m.Session().IsChecked("storefront-display") {
		t.Fatal("expected first traffic item checked")
	}

	m = press(t, m, "j", "enter")
	if !m.Session().IsChecked("promo-sign") {
		t.Fatal("expected second traffic item checked after j+enter")
	}

	m = press(t, m, "k", "space")
	if m.Session().IsChecked("storefront-display") {
		t.Fatal("expected second toggle to uncheck")
	}
	if done, total := m.Session().Progress(content.TopicTraffic); done != 1 || total != 4 {
		t.Errorf("progress = %d/%d, want 1/4", done, total)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "k", "k")
	if m.itemCursor != 0 {
		t.Errorf("cursor moved above first item: %d", m.itemCursor)
	}
	m = press(t, m, "j", "j", "j", "j", "j", "j")
	if m.itemCursor != 3 {
		t.Errorf("cursor should stop on last traffic item, got %d", m.itemCursor)
	}
}

func TestTabFocusAndSelectObjection(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "tab")
	if m.focused != focusObjections {
		t.Fatalf("expected objections focus, got %v", m.focused)
	}

	m = press(t, m, "j", "enter")
	o, ok := m.Session().Objection()
	if !ok || o.ID != "think-about-it" {
		t.Fatalf("expected think-about-it selected, got %+v (ok=%v)", o, ok)
	}

	// Selecting again keeps the selection.
	m = press(t, m, "space")
	if o, _ := m.Session().Objection(); o.ID != "think-about-it" {
		t.Errorf("re-select changed objection to %q", o.ID)
	}

	m = press(t, m, "tab")
	if m.focused != focusChecklist {
		t.Errorf("expected checklist focus after second tab, got %v", m.focused)
	}
}

func TestSearchKeepAndClear(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/")
	if m.focused != focusSearch {
		t.Fatalf("expected search focus, got %v", m.focused)
	}
	m = press(t, m, "caro")
	if got := m.Session().SearchQuery(); got != "caro" {
		t.Fatalf("expected query caro, got %q", got)
	}
	objs := m.Session().VisibleObjections()
	if len(objs) != 1 || objs[0].Title != "Está caro" {
		t.Fatalf("expected only Está caro, got %+v", objs)
	}

	m = press(t, m, "enter")
	if m.focused != focusChecklist || m.Session().SearchQuery() != "caro" {
		t.Fatalf("enter should keep the query and return focus, got focus %v query %q", m.focused, m.Session().SearchQuery())
	}

	m = press(t, m, "/", "esc")
	if m.Session().SearchQuery() != "" {
		t.Errorf("esc should clear the query, got %q", m.Session().SearchQuery())
	}
	if m.focused != focusChecklist {
		t.Errorf("expected checklist focus after esc, got %v", m.focused)
	}
}

func TestSearchQueryIsNotTruncated(t *testing.T) {
	m := newTestModel(t)
	long := strings.Repeat("vidriera ", 20)

	m = press(t, m, "/", long)
	if got := m.Session().SearchQuery(); got != long {
		t.Errorf("query cut to %d runes, want %d", len([]rune(got)), len([]rune(long)))
	}
}

func TestTabLabelsShareWidth(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "space")

	labels := m.tabLabels()
	if len(labels) != 3 {
		t.Fatalf("expected 3 tabs, got %d", len(labels))
	}
	if !strings.HasPrefix(labels[0], "1 Tráfico 1/4") {
		t.Errorf("unexpected first label %q", labels[0])
	}
	want := runewidth.StringWidth(labels[0])
	for _, l := range labels[1:] {
		if w := runewidth.StringWidth(l); w != want {
			t.Errorf("label %q is %d cells wide, want %d", l, w, want)
		}
	}
}

func TestSearchKeysDoNotTriggerCommands(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "/", "r", "q", "2")
	if m.Session().ActiveTopic() != content.TopicTraffic {
		t.Error("typing 2 in search switched topics")
	}
	if got := m.Session().SearchQuery(); got != "rq2" {
		t.Errorf("expected typed query rq2, got %q", got)
	}
}

func TestScenarioPickerApply(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "w")
	if !m.showPicker || m.focused != focusPicker {
		t.Fatal("expected scenario picker open")
	}
	m = press(t, m, "j", "j", "j")
	if sc := m.picker.SelectedScenario(); sc == nil || sc.ID != scenario.PriceObjection {
		t.Fatalf("expected price-objection selected, got %+v", sc)
	}

	m = press(t, m, "enter")
	if m.showPicker {
		t.Fatal("picker should close after apply")
	}
	s := m.Session()
	if s.ActiveTopic() != content.TopicConversion {
		t.Errorf("expected conversion, got %s", s.ActiveTopic())
	}
	if o, ok := s.Objection(); !ok || o.ID != "too-expensive" {
		t.Errorf("expected too-expensive selected, got %+v", o)
	}
	if !s.IsHighlighted("rescue-attempt") {
		t.Error("expected rescue-attempt highlighted")
	}
	items := s.VisibleChecklist()
	if items[m.itemCursor].ID != "rescue-attempt" {
		t.Errorf("cursor should land on the highlighted item, got %s", items[m.itemCursor].ID)
	}
	if !strings.Contains(m.statusMsg, "Piden descuento / precio") {
		t.Errorf("status should name the scenario, got %q", m.statusMsg)
	}
}

func TestScenarioPickerCancel(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "space", "w", "j", "esc")
	if m.showPicker || m.focused != focusChecklist {
		t.Fatal("expected picker closed and focus restored")
	}
	if !m.Session().IsChecked("storefront-display") || m.Session().ActiveTopic() != content.TopicTraffic {
		t.Error("cancel must not touch the session")
	}
}

func TestDetailAndReset(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "v")
	if !m.Session().ResponseDetailExpanded() {
		t.Fatal("v should expand responses")
	}

	m = press(t, m, "space", "tab", "enter", "r")
	st := m.Session().State()
	if len(st.Checked) != 0 || st.SelectedObjection != "" || st.SearchQuery != "" {
		t.Errorf("reset left state behind: %+v", st)
	}
	if !st.ResponseDetailExpanded {
		t.Error("reset should keep the response view")
	}
	if m.statusMsg != "Sesión reiniciada" {
		t.Errorf("unexpected status %q", m.statusMsg)
	}
}

func TestCopyObjection(t *testing.T) {
	var copied []string
	m := newTestModel(t, WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	}))

	m = press(t, m, "y")
	if len(copied) != 0 || !m.statusIsErr {
		t.Fatal("copy without a selection should fail without touching the clipboard")
	}

	if err := m.Session().RunScenario(scenario.PriceObjection); err != nil {
		t.Fatal(err)
	}
	m = press(t, m, "y")
	if len(copied) != 1 {
		t.Fatalf("expected one clipboard write, got %d", len(copied))
	}
	if !strings.Contains(copied[0], "Está caro") || !strings.Contains(copied[0], "**Respuesta:**") {
		t.Errorf("unexpected clipboard content:\n%s", copied[0])
	}
	if m.statusIsErr {
		t.Errorf("unexpected error status %q", m.statusMsg)
	}
}

func TestCopyObjectionClipboardError(t *testing.T) {
	m := newTestModel(t, WithClipboard(func(string) error { return errors.New("no display") }))
	if err := m.Session().SelectObjection("just-looking"); err != nil {
		t.Fatal(err)
	}
	m = press(t, m, "y")
	if !m.statusIsErr || !strings.Contains(m.statusMsg, "no display") {
		t.Errorf("expected clipboard error in status, got %q", m.statusMsg)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "?")
	if !m.showHelp || m.focused != focusHelp {
		t.Fatal("expected help overlay")
	}
	if !strings.Contains(m.View(), "Atajos") {
		t.Error("help overlay not rendered")
	}
	m = press(t, m, "x")
	if m.showHelp || m.focused != focusObjections {
		t.Fatalf("expected help dismissed back to objections, got %v", m.focused)
	}
}

func TestQuitLogsTimings(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := newTestModel(t, WithLogger(zap.New(core)))
	_ = m.View()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if logs.FilterMessage("timing").Len() == 0 {
		t.Error("expected timing records on quit")
	}
}

func TestViewContents(t *testing.T) {
	for _, width := range []int{140, 80} {
		m := newTestModel(t)
		updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: 60})
		m = updated.(Model)

		out := m.View()
		for _, want := range []string{"Tráfico", "Conversión", "Checklist", "Objeciones", "Vidriera impecable:", "Errores comunes"} {
			if !strings.Contains(out, want) {
				t.Errorf("width %d: view missing %q", width, want)
			}
		}
	}
}

func TestViewShowsObjectionDetail(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 80})
	m = updated.(Model)
	if err := m.Session().RunScenario(scenario.PriceObjection); err != nil {
		t.Fatal(err)
	}
	m = press(t, m, "tab")

	out := m.View()
	if !strings.Contains(out, "Respuesta") || !strings.Contains(out, "v: ver completo") {
		t.Errorf("abridged detail missing:\n%s", out)
	}
	if strings.Contains(out, "Evitar decir") {
		t.Error("abridged detail should not list phrases to avoid")
	}

	m = press(t, m, "v")
	out = m.View()
	if !strings.Contains(out, "Evitar decir") || !strings.Contains(out, "Es lo que vale") {
		t.Errorf("full detail missing phrases to avoid:\n%s", out)
	}
}

func TestViewNoResults(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "/", "zzz", "enter")
	if !strings.Contains(m.View(), "Sin resultados") {
		t.Error("expected empty-result notice")
	}
}

func TestContentReload(t *testing.T) {
	path := testutil.WritePlaybook(t, testutil.MinimalPlaybook)
	w, err := watcher.New(path)
	if err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, WithContentWatcher(w))
	if m.Init() == nil {
		t.Fatal("Init should wait on the watcher")
	}

	updated, cmd := m.Update(ContentChangedMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Error("reload should re-arm the watch")
	}
	if got := m.Session().ActiveSection().Title; got != "Entrada" {
		t.Errorf("section not reloaded, title %q", got)
	}
	if m.statusMsg != "Playbook recargado" || m.statusIsErr {
		t.Errorf("unexpected status %q", m.statusMsg)
	}
	if m.picker.ScenarioCount() != 1 {
		t.Errorf("picker not rebuilt, %d scenarios", m.picker.ScenarioCount())
	}

	testutil.WriteFile(t, filepath.Dir(path), filepath.Base(path), "sections: []\n")
	updated, _ = m.Update(ContentChangedMsg{})
	m = updated.(Model)
	if !m.statusIsErr || !strings.Contains(m.statusMsg, "Playbook inválido") {
		t.Errorf("expected reload error status, got %q", m.statusMsg)
	}
	if got := m.Session().ActiveSection().Title; got != "Entrada" {
		t.Errorf("broken file should keep previous content, title %q", got)
	}
}

func TestContentChangedWithoutWatcher(t *testing.T) {
	m := newTestModel(t)
	if m.Init() != nil {
		t.Error("Init without watcher should return nil")
	}
	updated, cmd := m.Update(ContentChangedMsg{})
	if cmd != nil {
		t.Error("no watch to re-arm")
	}
	if got := updated.(Model).Session().ActiveSection().Title; got != "Tráfico" {
		t.Errorf("content changed unexpectedly: %q", got)
	}
}
