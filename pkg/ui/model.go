package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/export"
	"github.com/vanderheijden86/playbook/pkg/metrics"
	"github.com/vanderheijden86/playbook/pkg/session"
	"github.com/vanderheijden86/playbook/pkg/watcher"
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	// Below this width the objections panel stacks under the checklist.
	splitViewThreshold = 100
)

type focus int

const (
	focusChecklist focus = iota
	focusObjections
	focusSearch
	focusPicker
	focusHelp
)

func (f focus) String() string {
	switch f {
	case focusChecklist:
		return "checklist"
	case focusObjections:
		return "objections"
	case focusSearch:
		return "search"
	case focusPicker:
		return "picker"
	case focusHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Option configures a Model.
type Option func(*Model)

// WithLogger attaches a logger. Render timings are written to it on quit.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyFn = write
		}
	}
}

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option {
	return func(m *Model) {
		m.theme = t
	}
}

// WithContentWatcher reloads the playbook from w's file whenever it changes.
func WithContentWatcher(w *watcher.Watcher) Option {
	return func(m *Model) {
		m.watcher = w
	}
}

// ContentChangedMsg reports that the watched playbook file was saved.
type ContentChangedMsg struct{}

// WatchContentCmd waits for the next change on w.
func WatchContentCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return ContentChangedMsg{}
	}
}

// Model is the bubbletea model for the playbook view. All domain state
// lives in the session; the model only adds cursors, focus and overlays.
type Model struct {
	sess    *session.Session
	log     *zap.Logger
	copyFn  func(string) error
	watcher *watcher.Watcher

	theme Theme
	keys  keyMap
	help  help.Model

	search   textinput.Model
	viewport viewport.Model
	picker   ScenarioPickerModel

	focused     focus
	lastFocus   focus // panel to return to after an overlay
	showHelp    bool
	showPicker  bool
	itemCursor  int
	objCursor   int
	cursorLine  int
	statusMsg   string
	statusIsErr bool

	width  int
	height int
	ready  bool
}

// NewModel builds the playbook view over sess.
func NewModel(sess *session.Session, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "buscar en checklist y objeciones..."
	ti.Width = 40
	ti.SetValue(sess.SearchQuery())

	m := Model{
		sess:     sess,
		log:      zap.NewNop(),
		copyFn:   clipboard.WriteAll,
		theme:    DefaultTheme(lipgloss.DefaultRenderer()),
		keys:     defaultKeyMap(),
		help:     help.New(),
		search:   ti,
		viewport: viewport.New(defaultWidth, defaultHeight-4),
		focused:  focusChecklist,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.picker = NewScenarioPickerModel(sess.Scenarios(), m.topicTitles(), m.theme)
	m.picker.SetSize(m.width, m.height)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchContentCmd(m.watcher)
	}
	return nil
}

// Session exposes the underlying session, mainly for tests and the CLI.
func (m Model) Session() *session.Session {
	return m.sess
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.picker.SetSize(msg.Width, m.bodyHeight())
		m.viewport.Width = msg.Width
		m.viewport.Height = m.bodyHeight()
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ContentChangedMsg:
		if m.watcher == nil {
			return m, nil
		}
		m.reloadContent(m.watcher.Path())
		return m, WatchContentCmd(m.watcher)
	}

	if m.focused == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focused {
	case focusHelp:
		// Any key dismisses help; ctrl+c still quits.
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		m.showHelp = false
		m.help.ShowAll = false
		m.focused = m.lastFocus
		return m, nil
	case focusPicker:
		return m.handlePickerKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	}

	m.clearStatus()
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()

	case key.Matches(msg, k.Help):
		m.lastFocus = m.focused
		m.focused = focusHelp
		m.showHelp = true
		m.help.ShowAll = true

	case key.Matches(msg, k.Topic1):
		m.switchTopic(content.TopicTraffic)
	case key.Matches(msg, k.Topic2):
		m.switchTopic(content.TopicConversion)
	case key.Matches(msg, k.Topic3):
		m.switchTopic(content.TopicTicketSize)
	case key.Matches(msg, k.PrevTopic):
		m.switchTopic(m.adjacentTopic(-1))
	case key.Matches(msg, k.NextTopic):
		m.switchTopic(m.adjacentTopic(1))

	case key.Matches(msg, k.Focus):
		if m.focused == focusChecklist {
			m.focused = focusObjections
		} else {
			m.focused = focusChecklist
		}

	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)

	case key.Matches(msg, k.Toggle):
		m.activate()

	case key.Matches(msg, k.Search):
		m.lastFocus = m.focused
		m.focused = focusSearch
		m.search.SetValue(m.sess.SearchQuery())
		m.search.CursorEnd()
		cmd := m.search.Focus()
		m.refresh()
		return m, cmd

	case key.Matches(msg, k.Detail):
		m.sess.ToggleResponseDetail()

	case key.Matches(msg, k.Scenario):
		m.lastFocus = m.focused
		m.focused = focusPicker
		m.showPicker = true
		m.picker = NewScenarioPickerModel(m.sess.Scenarios(), m.topicTitles(), m.theme)
		m.picker.SetSize(m.width, m.bodyHeight())

	case key.Matches(msg, k.Reset):
		m.sess.Reset()
		m.search.SetValue("")
		m.itemCursor, m.objCursor = 0, 0
		m.setStatus("Sesión reiniciada", false)

	case key.Matches(msg, k.Copy):
		m.copySelectedObjection()

	case key.Matches(msg, k.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
		return m, nil
	case key.Matches(msg, k.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m.quit()
	case key.Matches(msg, m.keys.Cancel):
		m.search.SetValue("")
		m.sess.SetSearchQuery("")
		m.search.Blur()
		m.focused = m.lastFocus
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.search.Blur()
		m.focused = m.lastFocus
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.sess.SearchQuery() {
		m.sess.SetSearchQuery(m.search.Value())
		m.itemCursor, m.objCursor = 0, 0
	}
	m.refresh()
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m.quit()
	case key.Matches(msg, m.keys.PickerUp):
		m.picker.MoveUp()
	case key.Matches(msg, m.keys.PickerDown):
		m.picker.MoveDown()
	case key.Matches(msg, m.keys.Confirm):
		m.closePicker()
		if sc := m.picker.SelectedScenario(); sc != nil {
			m.applyScenario(*sc)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Scenario), msg.String() == "q":
		m.closePicker()
	}
	return m, nil
}

func (m *Model) closePicker() {
	m.showPicker = false
	m.focused = m.lastFocus
}

// applyScenario runs sc and moves the cursors onto what it surfaced.
func (m *Model) applyScenario(sc content.Scenario) {
	if err := m.sess.RunScenario(sc.ID); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.search.SetValue("")
	m.itemCursor, m.objCursor = 0, 0
	for i, item := range m.sess.VisibleChecklist() {
		if m.sess.IsHighlighted(item.ID) {
			m.itemCursor = i
			break
		}
	}
	if o, ok := m.sess.Objection(); ok {
		for i, vo := range m.sess.VisibleObjections() {
			if vo.ID == o.ID {
				m.objCursor = i
				break
			}
		}
	}
	m.focused = focusChecklist
	m.setStatus(FormatScenarioInfo(&sc), false)
}

// reloadContent swaps in the playbook at path. A file that does not load
// leaves the current content in place.
func (m *Model) reloadContent(path string) {
	ds, err := content.LoadFile(path)
	if err != nil {
		m.log.Warn("playbook reload failed", zap.String("path", path), zap.Error(err))
		m.setStatus("Playbook inválido, se mantiene el anterior: "+err.Error(), true)
		return
	}
	m.sess.ReplaceDataset(ds)
	if m.showPicker {
		m.closePicker()
	}
	m.picker = NewScenarioPickerModel(m.sess.Scenarios(), m.topicTitles(), m.theme)
	m.picker.SetSize(m.width, m.bodyHeight())
	m.setStatus("Playbook recargado", false)
	m.refresh()
}

func (m *Model) switchTopic(t content.Topic) {
	if t == m.sess.ActiveTopic() {
		return
	}
	if err := m.sess.SetActiveTopic(t); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.itemCursor = 0
	m.viewport.GotoTop()
}

func (m Model) adjacentTopic(delta int) content.Topic {
	topics := content.Topics()
	cur := 0
	for i, t := range topics {
		if t == m.sess.ActiveTopic() {
			cur = i
			break
		}
	}
	n := len(topics)
	return topics[((cur+delta)%n+n)%n]
}

func (m *Model) moveCursor(delta int) {
	if m.focused == focusObjections {
		m.objCursor = clamp(m.objCursor+delta, len(m.sess.VisibleObjections()))
		return
	}
	m.itemCursor = clamp(m.itemCursor+delta, len(m.sess.VisibleChecklist()))
}

// activate toggles the item or selects the objection under the cursor.
func (m *Model) activate() {
	if m.focused == focusObjections {
		objs := m.sess.VisibleObjections()
		if len(objs) == 0 {
			return
		}
		if err := m.sess.SelectObjection(objs[m.objCursor].ID); err != nil {
			m.setStatus(err.Error(), true)
		}
		return
	}
	items := m.sess.VisibleChecklist()
	if len(items) == 0 {
		return
	}
	if err := m.sess.ToggleChecked(items[m.itemCursor].ID); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) copySelectedObjection() {
	o, ok := m.sess.Objection()
	if !ok {
		m.setStatus("Elegí una objeción para copiar", true)
		return
	}
	doc := export.ObjectionMarkdown(o, m.sess.ResponseDetailExpanded())
	if err := m.copyFn(doc); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		m.setStatus(fmt.Sprintf("No se pudo copiar: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copiado: \"%s\"", o.Title), false)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.logTimings()
	return m, tea.Quit
}

// logTimings writes the collected filter/scenario/render timings.
func (m Model) logTimings() {
	for _, s := range metrics.AllTimingStats() {
		m.log.Info("timing",
			zap.String("metric", s.Name),
			zap.Int64("count", s.Count),
			zap.Float64("total_ms", s.TotalMs),
			zap.Float64("avg_ms", s.AvgMs),
			zap.Float64("max_ms", s.MaxMs))
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
}

func (m *Model) clearStatus() {
	m.statusMsg = ""
	m.statusIsErr = false
}

func (m Model) topicTitles() map[content.Topic]string {
	titles := make(map[content.Topic]string, 3)
	for _, t := range content.Topics() {
		if sec, ok := m.sess.Section(t); ok {
			titles[t] = sec.Title
		}
	}
	return titles
}

func (m Model) bodyHeight() int {
	// header, search/status line, footer
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

// refresh clamps cursors, re-renders the body into the viewport and keeps
// the cursor row on screen.
func (m *Model) refresh() {
	m.itemCursor = clamp(m.itemCursor, len(m.sess.VisibleChecklist()))
	m.objCursor = clamp(m.objCursor, len(m.sess.VisibleObjections()))

	body, line := m.renderBody()
	m.cursorLine = line
	m.viewport.SetContent(body)

	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if h := m.viewport.Height; h > 0 && line >= m.viewport.YOffset+h {
		m.viewport.SetYOffset(line - h + 1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	var sb strings.Builder
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")

	switch {
	case m.showHelp:
		sb.WriteString(m.renderHelpOverlay())
	case m.showPicker:
		sb.WriteString(m.picker.View())
	default:
		sb.WriteString(m.viewport.View())
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderStatusLine())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderTabs() string {
	t := m.theme
	parts := []string{t.Header.Render("Playbook")}
	labels := m.tabLabels()
	for i, topic := range content.Topics() {
		label := labels[i]
		if topic == m.sess.ActiveTopic() {
			parts = append(parts, t.TabActive.Render(label))
		} else {
			parts = append(parts, t.TabIdle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// tabLabels returns "N Title done/total" per topic, padded to the widest so
// the tab bar does not shift as items get checked.
func (m Model) tabLabels() []string {
	topics := content.Topics()
	labels := make([]string, len(topics))
	widest := 0
	for i, topic := range topics {
		sec, _ := m.sess.Section(topic)
		done, total := m.sess.Progress(topic)
		labels[i] = fmt.Sprintf("%d %s %d/%d", i+1, sec.Title, done, total)
		widest = max(widest, runewidth.StringWidth(labels[i]))
	}
	for i := range labels {
		labels[i] = padRight(labels[i], widest)
	}
	return labels
}

func (m Model) renderStatusLine() string {
	t := m.theme
	switch {
	case m.focused == focusSearch:
		return m.search.View()
	case m.statusMsg != "" && m.statusIsErr:
		return t.ErrorText.Render(m.statusMsg)
	case m.statusMsg != "":
		return t.DoneText.Render(m.statusMsg)
	case m.sess.SearchQuery() != "":
		return t.SecondaryText.Render(fmt.Sprintf("Filtro: «%s»  (/ para editar, r para reiniciar)", m.sess.SearchQuery()))
	default:
		return ""
	}
}

func (m Model) renderHelpOverlay() string {
	t := m.theme
	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(t.PrimaryBold.Render("Atajos") + "\n\n" + m.help.View(m.keys))
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

// renderBody lays out the checklist and objection panels. It returns the
// content and the line of the focused cursor.
func (m Model) renderBody() (string, int) {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	if width < splitViewThreshold {
		left, leftCursor := m.renderChecklistPanel(width)
		right, rightCursor := m.renderObjectionPanel(width)
		line := leftCursor
		if m.focusedPanel() == focusObjections {
			line = lipgloss.Height(left) + 1 + rightCursor
		}
		return left + "\n" + RenderDivider(width, m.theme) + "\n" + right, line
	}

	leftWidth := width * 3 / 5
	rightWidth := width - leftWidth - 3
	left, leftCursor := m.renderChecklistPanel(leftWidth)
	right, rightCursor := m.renderObjectionPanel(rightWidth)
	line := leftCursor
	if m.focusedPanel() == focusObjections {
		line = rightCursor
	}
	gutter := m.theme.MutedText.Render(" │ ")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(left),
		gutter,
		lipgloss.NewStyle().Width(rightWidth).Render(right),
	), line
}

// focusedPanel resolves overlays to the panel beneath them.
func (m Model) focusedPanel() focus {
	if m.focused == focusChecklist || m.focused == focusObjections {
		return m.focused
	}
	return m.lastFocus
}

func (m Model) renderChecklistPanel(width int) (string, int) {
	t := m.theme
	sec := m.sess.ActiveSection()
	var lines []string

	done, total := m.sess.Progress(sec.Topic)
	lines = append(lines, t.PrimaryBold.Render(sec.Title)+"  "+RenderProgressBar(done, total, 10, t))
	if sec.Description != "" {
		lines = append(lines, t.MutedText.Render(wrapIndent(sec.Description, width, 0)))
	}
	lines = append(lines, "")

	if card := m.renderSummaryCard(sec.Summary, width); card != "" {
		lines = append(lines, card)
	}
	if sec.Objective != "" {
		lines = append(lines, t.SecondaryText.Render(wrapIndent("Objetivo: "+sec.Objective, width, 0)))
	}
	lines = append(lines, "")

	var header string
	if m.focusedPanel() == focusChecklist {
		header = t.PrimaryBold.Render("▌Checklist")
	} else {
		header = t.SecondaryText.Render(" Checklist")
	}
	lines = append(lines, header)

	cursorLine := countLines(lines)
	items := m.sess.VisibleChecklist()
	if len(items) == 0 {
		lines = append(lines, t.MutedText.Render(fmt.Sprintf("  Sin resultados para «%s»", m.sess.SearchQuery())))
	}
	for i, item := range items {
		if i == m.itemCursor {
			cursorLine = countLines(lines)
		}
		lines = append(lines, m.renderItem(item, i == m.itemCursor && m.focusedPanel() == focusChecklist, width))
	}

	if len(sec.CommonErrors) > 0 {
		lines = append(lines, "", t.SecondaryText.Render(" Errores comunes"))
		for _, e := range sec.CommonErrors {
			lines = append(lines, t.AvoidText.Render(wrapIndent("✗ "+e, width, 2)))
		}
	}

	return strings.Join(lines, "\n"), cursorLine
}

func (m Model) renderSummaryCard(s content.Summary, width int) string {
	if s.Caption == "" && s.Controls == "" && len(s.Highlights) == 0 {
		return ""
	}
	t := m.theme
	inner := width - 4
	var lines []string
	if s.Caption != "" {
		lines = append(lines, t.PrimaryBold.Render(truncate(s.Caption, inner)))
	}
	if s.Controls != "" {
		lines = append(lines, wrapIndent("Controlás: "+s.Controls, inner, 0))
	}
	for _, h := range s.Highlights {
		lines = append(lines, "• "+truncate(h, inner-2))
	}
	if s.Motto != "" {
		lines = append(lines, t.Renderer.NewStyle().Italic(true).Foreground(t.Subtext).Render(truncate(s.Motto, inner)))
	}
	return t.Card.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderItem(item content.ChecklistItem, atCursor bool, width int) string {
	t := m.theme

	prefix := "  "
	if atCursor {
		prefix = t.PrimaryBold.Render("▸ ")
	}
	box := "[ ]"
	if m.sess.IsChecked(item.ID) {
		box = t.DoneText.Render("[x]")
	}
	label := item.Label
	if atCursor {
		label = t.Selected.Render(label)
	} else {
		label = t.Base.Bold(true).Render(label)
	}
	line := prefix + box + " " + label
	if m.sess.IsHighlighted(item.ID) {
		line += " " + t.FlagMarker.Render("◀ clave")
	}

	if item.Body == "" {
		return line
	}
	return line + "\n" + t.MutedText.Render(wrapIndent(item.Body, width, 6))
}

func (m Model) renderObjectionPanel(width int) (string, int) {
	t := m.theme
	var lines []string

	if m.focusedPanel() == focusObjections {
		lines = append(lines, t.PrimaryBold.Render("▌Objeciones"))
	} else {
		lines = append(lines, t.SecondaryText.Render(" Objeciones"))
	}

	selected, hasSelected := m.sess.Objection()
	cursorLine := countLines(lines)
	objs := m.sess.VisibleObjections()
	if len(objs) == 0 {
		lines = append(lines, t.MutedText.Render(fmt.Sprintf("  Sin resultados para «%s»", m.sess.SearchQuery())))
	}
	for i, o := range objs {
		if i == m.objCursor {
			cursorLine = countLines(lines)
		}
		prefix := "  "
		if i == m.objCursor && m.focusedPanel() == focusObjections {
			prefix = t.PrimaryBold.Render("▸ ")
		}
		marker := "○ "
		title := truncate("\""+o.Title+"\"", width-6)
		if hasSelected && o.ID == selected.ID {
			marker = t.Renderer.NewStyle().Foreground(t.Objection).Render("● ")
			title = t.Renderer.NewStyle().Foreground(t.Objection).Bold(true).Render(title)
		}
		lines = append(lines, prefix+marker+title)
	}

	if hasSelected {
		lines = append(lines, "", m.renderObjectionDetail(selected, width))
	}
	return strings.Join(lines, "\n"), cursorLine
}

func (m Model) renderObjectionDetail(o content.Objection, width int) string {
	t := m.theme
	inner := width - 4
	full := m.sess.ResponseDetailExpanded()

	var lines []string
	lines = append(lines, t.Renderer.NewStyle().Foreground(t.Objection).Bold(true).Render(truncate("\""+o.Title+"\"", inner)))
	lines = append(lines, "")
	lines = append(lines, t.SecondaryText.Render("Respuesta"))
	lines = append(lines, wrapIndent(o.ScriptedResponse, inner, 0))
	lines = append(lines, "")

	action := o.ShortAction()
	if full {
		action = o.RecommendedAction
	}
	if action != "" {
		lines = append(lines, t.SecondaryText.Render("Acción"))
		lines = append(lines, wrapIndent(action, inner, 0))
	}
	if full && len(o.PhrasesToAvoid) > 0 {
		lines = append(lines, "", t.SecondaryText.Render("Evitar decir"))
		for _, p := range o.PhrasesToAvoid {
			lines = append(lines, t.AvoidText.Render(wrapIndent("✗ "+p, inner, 0)))
		}
	}

	hint := "v: ver completo"
	if full {
		hint = "v: ver resumen"
	}
	lines = append(lines, "", t.MutedText.Render(hint+" • y: copiar"))

	return t.Card.BorderForeground(t.Objection).Width(width - 2).Render(strings.Join(lines, "\n"))
}

func countLines(lines []string) int {
	if len(lines) == 0 {
		return 0
	}
	return strings.Count(strings.Join(lines, "\n"), "\n") + 1
}

// clamp keeps a cursor inside [0, n).
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
