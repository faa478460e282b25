// Package session owns the mutable, in-memory playbook state for one user:
// the active topic, the search query, which checklist items are done or
// highlighted, the selected objection, and whether responses are shown in
// full.
//
// A Session is not safe for concurrent use. Every command runs to completion
// before the next one starts, which is exactly how the bubbletea runtime
// delivers messages to Update.
package session

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/filter"
	"github.com/vanderheijden86/playbook/pkg/metrics"
	"github.com/vanderheijden86/playbook/pkg/scenario"
)

var (
	// ErrUnknownEntity is returned for topic, item, or objection ids that do
	// not exist in the dataset.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrOutOfScope is returned when toggling an item that belongs to a
	// topic other than the active one, unless permissive toggles are enabled.
	ErrOutOfScope = errors.New("item not in active topic")
)

// State is a point-in-time copy of the session. Id sets are sorted.
type State struct {
	ActiveTopic            content.Topic `json:"active_topic"`
	SearchQuery            string        `json:"search_query"`
	Checked                []string      `json:"checked"`
	Highlighted            []string      `json:"highlighted"`
	SelectedObjection      string        `json:"selected_objection,omitempty"`
	ResponseDetailExpanded bool          `json:"response_detail_expanded"`
}

// Option configures a Session.
type Option func(*Session)

// WithInitialTopic sets the topic a new session opens on. Invalid topics are
// ignored.
func WithInitialTopic(t content.Topic) Option {
	return func(s *Session) {
		if t.IsValid() {
			s.topic = t
		}
	}
}

// WithResponseDetail sets the initial full/abridged response view.
func WithResponseDetail(expanded bool) Option {
	return func(s *Session) {
		s.expanded = expanded
	}
}

// WithPermissiveToggles allows toggling items of any topic, not just the
// active one.
func WithPermissiveToggles(permissive bool) Option {
	return func(s *Session) {
		s.permissive = permissive
	}
}

// WithLogger attaches a logger for command tracing.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session is the playbook state machine.
type Session struct {
	ds       *content.Dataset
	resolver *scenario.Resolver
	log      *zap.Logger

	permissive bool

	topic       content.Topic
	query       string
	checked     map[string]struct{}
	highlighted map[string]struct{}
	objection   string
	expanded    bool
}

// New creates a session over ds with default state: traffic topic, nothing
// checked, highlighted or selected, abridged responses.
func New(ds *content.Dataset, opts ...Option) *Session {
	s := &Session{
		ds:          ds,
		resolver:    scenario.NewResolver(ds),
		log:         zap.NewNop(),
		topic:       content.TopicTraffic,
		checked:     make(map[string]struct{}),
		highlighted: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dataset returns the content the session runs over.
func (s *Session) Dataset() *content.Dataset {
	return s.ds
}

// Scenarios returns the scenario catalog for this session's dataset.
func (s *Session) Scenarios() []content.Scenario {
	return s.resolver.Catalog()
}

// ---- queries ----

// ActiveTopic returns the current tab.
func (s *Session) ActiveTopic() content.Topic {
	return s.topic
}

// SearchQuery returns the current free-text filter.
func (s *Session) SearchQuery() string {
	return s.query
}

// ResponseDetailExpanded reports whether full responses are shown.
func (s *Session) ResponseDetailExpanded() bool {
	return s.expanded
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{
		ActiveTopic:            s.topic,
		SearchQuery:            s.query,
		Checked:                sortedKeys(s.checked),
		Highlighted:            sortedKeys(s.highlighted),
		SelectedObjection:      s.objection,
		ResponseDetailExpanded: s.expanded,
	}
}

// Section returns the content for topic t.
func (s *Session) Section(t content.Topic) (content.Section, bool) {
	return s.ds.Section(t)
}

// ActiveSection returns the content for the active topic.
func (s *Session) ActiveSection() content.Section {
	sec, _ := s.ds.Section(s.topic)
	return sec
}

// ObjectionByID looks up any objection in the dataset.
func (s *Session) ObjectionByID(id string) (content.Objection, bool) {
	return s.ds.Objection(id)
}

// Objection returns the selected objection, if any.
func (s *Session) Objection() (content.Objection, bool) {
	if s.objection == "" {
		return content.Objection{}, false
	}
	return s.ds.Objection(s.objection)
}

// VisibleChecklist returns the active topic's items that match the query.
func (s *Session) VisibleChecklist() []content.ChecklistItem {
	return filter.VisibleChecklist(s.ActiveSection(), s.query)
}

// VisibleObjections returns the objections whose title matches the query.
func (s *Session) VisibleObjections() []content.Objection {
	return filter.VisibleObjections(s.ds.Objections(), s.query)
}

// IsChecked reports whether the item is marked done.
func (s *Session) IsChecked(id string) bool {
	_, ok := s.checked[id]
	return ok
}

// IsHighlighted reports whether a scenario highlighted the item.
func (s *Session) IsHighlighted(id string) bool {
	_, ok := s.highlighted[id]
	return ok
}

// Progress returns how many of topic t's items are checked.
func (s *Session) Progress(t content.Topic) (done, total int) {
	sec, ok := s.ds.Section(t)
	if !ok {
		return 0, 0
	}
	for _, item := range sec.Checklist {
		if s.IsChecked(item.ID) {
			done++
		}
	}
	return done, len(sec.Checklist)
}

// ---- commands ----

// SetActiveTopic switches tabs. Checked items, highlights and the query are
// kept.
func (s *Session) SetActiveTopic(t content.Topic) error {
	if !t.IsValid() {
		s.log.Warn("rejected topic switch", zap.String("topic", string(t)))
		return fmt.Errorf("%w: topic %q", ErrUnknownEntity, t)
	}
	s.topic = t
	s.log.Debug("topic switched", zap.String("topic", string(t)))
	return nil
}

// SetSearchQuery replaces the free-text filter. The text is kept verbatim.
func (s *Session) SetSearchQuery(q string) {
	s.query = q
}

// ToggleChecked flips the done mark on a checklist item.
func (s *Session) ToggleChecked(id string) error {
	if err := s.checkToggleable(id); err != nil {
		s.log.Warn("rejected toggle", zap.String("item", id), zap.Error(err))
		return err
	}
	if _, ok := s.checked[id]; ok {
		delete(s.checked, id)
	} else {
		s.checked[id] = struct{}{}
	}
	s.log.Debug("item toggled", zap.String("item", id), zap.Bool("checked", s.IsChecked(id)))
	return nil
}

func (s *Session) checkToggleable(id string) error {
	topics := s.ds.ItemTopics(id)
	if len(topics) == 0 {
		return fmt.Errorf("%w: item %q", ErrUnknownEntity, id)
	}
	if s.permissive {
		return nil
	}
	for _, t := range topics {
		if t == s.topic {
			return nil
		}
	}
	return fmt.Errorf("%w: %q belongs to %s, active topic is %s", ErrOutOfScope, id, topics[0], s.topic)
}

// SelectObjection shows an objection's detail. An empty id clears the
// selection; selecting the current objection again leaves it selected.
func (s *Session) SelectObjection(id string) error {
	if id == "" {
		s.objection = ""
		return nil
	}
	if _, ok := s.ds.Objection(id); !ok {
		s.log.Warn("rejected objection", zap.String("objection", id))
		return fmt.Errorf("%w: objection %q", ErrUnknownEntity, id)
	}
	s.objection = id
	s.log.Debug("objection selected", zap.String("objection", id))
	return nil
}

// ToggleResponseDetail flips between the full and abridged response view.
func (s *Session) ToggleResponseDetail() {
	s.expanded = !s.expanded
}

// Reset clears checked items, highlights, the query and the selected
// objection. The active topic and the response view are kept.
func (s *Session) Reset() {
	clear(s.checked)
	clear(s.highlighted)
	s.query = ""
	s.objection = ""
}

// RunScenario resets the session and applies the scenario's patch. An unknown
// id returns scenario.ErrInvalidScenario and leaves the state untouched.
func (s *Session) RunScenario(id string) error {
	defer metrics.Timer(metrics.ScenarioApply)()

	patch, err := s.resolver.Resolve(id)
	if err != nil {
		s.log.Warn("rejected scenario", zap.String("scenario", id))
		return err
	}

	s.Reset()
	s.topic = patch.Topic
	for _, hid := range patch.Highlights {
		s.highlighted[hid] = struct{}{}
	}
	s.objection = patch.Objection

	s.log.Info("scenario applied",
		zap.String("scenario", patch.ScenarioID),
		zap.String("topic", string(patch.Topic)),
		zap.Strings("highlighted", patch.Highlights),
		zap.String("objection", patch.Objection))
	return nil
}

// ReplaceDataset swaps in reloaded content. Marks and highlights on items
// that no longer exist are dropped, as is a selection of a removed
// objection. The topic, query and response view are kept.
func (s *Session) ReplaceDataset(ds *content.Dataset) {
	s.ds = ds
	s.resolver = scenario.NewResolver(ds)

	var dropped int
	for _, set := range []map[string]struct{}{s.checked, s.highlighted} {
		for id := range set {
			if !ds.HasItem(id) {
				delete(set, id)
				dropped++
			}
		}
	}
	if s.objection != "" {
		if _, ok := ds.Objection(s.objection); !ok {
			s.objection = ""
			dropped++
		}
	}
	s.log.Info("dataset replaced",
		zap.Int("items", ds.ItemCount()),
		zap.Int("dropped_refs", dropped))
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
