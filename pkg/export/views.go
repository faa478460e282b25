package export

import (
	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/session"
)

// ItemView is the JSON shape of a checklist item.
type ItemView struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Body        string `json:"body,omitempty"`
	Checked     bool   `json:"checked"`
	Highlighted bool   `json:"highlighted"`
}

// SectionView is the JSON shape of a topic section.
type SectionView struct {
	Topic        content.Topic `json:"topic"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Objective    string        `json:"objective,omitempty"`
	Checklist    []ItemView    `json:"checklist"`
	CommonErrors []string      `json:"common_errors,omitempty"`
}

// ObjectionView is the JSON shape of an objection. Avoid is only filled in
// the full form.
type ObjectionView struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Response string   `json:"response"`
	Action   string   `json:"action"`
	Avoid    []string `json:"avoid,omitempty"`
	Full     bool     `json:"full"`
}

// SearchView is the result of a free-text query.
type SearchView struct {
	Query      string          `json:"query"`
	Topic      content.Topic   `json:"topic"`
	Checklist  []ItemView      `json:"checklist"`
	Objections []ObjectionView `json:"objections"`
}

// ScenarioView is one catalog entry.
type ScenarioView struct {
	ID         string        `json:"id"`
	Label      string        `json:"label"`
	Topic      content.Topic `json:"topic"`
	Highlights []string      `json:"highlights"`
	Objection  string        `json:"objection,omitempty"`
}

// ScenarioResultView is the session after running a scenario.
type ScenarioResultView struct {
	Scenario  ScenarioView   `json:"scenario"`
	State     session.State  `json:"state"`
	Section   SectionView    `json:"section"`
	Objection *ObjectionView `json:"objection,omitempty"`
}

// NewItemViews maps items with their marks. marks may be nil.
func NewItemViews(items []content.ChecklistItem, marks Marks) []ItemView {
	if marks == nil {
		marks = noMarks{}
	}
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, ItemView{
			ID:          it.ID,
			Label:       it.Label,
			Body:        it.Body,
			Checked:     marks.IsChecked(it.ID),
			Highlighted: marks.IsHighlighted(it.ID),
		})
	}
	return out
}

// NewSectionView builds the JSON view of sec.
func NewSectionView(sec content.Section, marks Marks) SectionView {
	return SectionView{
		Topic:        sec.Topic,
		Title:        sec.Title,
		Description:  sec.Description,
		Objective:    sec.Objective,
		Checklist:    NewItemViews(sec.Checklist, marks),
		CommonErrors: sec.CommonErrors,
	}
}

// NewObjectionView builds the JSON view of o in the short or full form.
func NewObjectionView(o content.Objection, full bool) ObjectionView {
	v := ObjectionView{
		ID:       o.ID,
		Title:    o.Title,
		Response: o.ScriptedResponse,
		Full:     full,
	}
	if full {
		v.Action = o.RecommendedAction
		v.Avoid = o.PhrasesToAvoid
	} else {
		v.Action = o.ShortAction()
	}
	return v
}

// NewObjectionViews maps a list of objections.
func NewObjectionViews(objs []content.Objection, full bool) []ObjectionView {
	out := make([]ObjectionView, 0, len(objs))
	for _, o := range objs {
		out = append(out, NewObjectionView(o, full))
	}
	return out
}

// NewScenarioView builds the JSON view of a catalog entry.
func NewScenarioView(sc content.Scenario) ScenarioView {
	return ScenarioView{
		ID:         sc.ID,
		Label:      sc.Label,
		Topic:      sc.Topic,
		Highlights: sc.Highlights,
		Objection:  sc.Objection,
	}
}

// NewSearchView captures what s currently shows for its query.
func NewSearchView(s *session.Session) SearchView {
	return SearchView{
		Query:      s.SearchQuery(),
		Topic:      s.ActiveTopic(),
		Checklist:  NewItemViews(s.VisibleChecklist(), s),
		Objections: NewObjectionViews(s.VisibleObjections(), s.ResponseDetailExpanded()),
	}
}

// NewScenarioResultView captures s after sc ran on it.
func NewScenarioResultView(sc content.Scenario, s *session.Session) ScenarioResultView {
	v := ScenarioResultView{
		Scenario: NewScenarioView(sc),
		State:    s.State(),
		Section:  NewSectionView(s.ActiveSection(), s),
	}
	if o, ok := s.Objection(); ok {
		ov := NewObjectionView(o, s.ResponseDetailExpanded())
		v.Objection = &ov
	}
	return v
}
