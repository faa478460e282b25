// Package content holds the immutable playbook reference data: the three
// topic sections with their checklists and common errors, the customer
// objections with scripted responses, and the guided scenarios that point
// into both.
//
// A Dataset is built once (from the embedded defaults or an alternate YAML
// file) and never mutated afterwards. Accessors hand out copies so callers
// cannot reach back into the shared data.
package content

import (
	"strings"
)

// Topic identifies one of the three sales-funnel sections.
type Topic string

const (
	TopicTraffic    Topic = "traffic"
	TopicConversion Topic = "conversion"
	TopicTicketSize Topic = "ticket-size"
)

// Topics returns every topic in tab order.
func Topics() []Topic {
	return []Topic{TopicTraffic, TopicConversion, TopicTicketSize}
}

// IsValid reports whether t is one of the known topics.
func (t Topic) IsValid() bool {
	switch t {
	case TopicTraffic, TopicConversion, TopicTicketSize:
		return true
	}
	return false
}

// ParseTopic accepts a topic id, case-insensitively.
func ParseTopic(s string) (Topic, bool) {
	t := Topic(strings.ToLower(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// ChecklistItem is a single behavior expected of sales staff.
type ChecklistItem struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"` // bold lead-in
	Body  string `yaml:"body" json:"body"`
}

// Text joins label and body the way they are displayed.
func (c ChecklistItem) Text() string {
	switch {
	case c.Label == "":
		return c.Body
	case c.Body == "":
		return c.Label
	}
	return c.Label + " " + c.Body
}

// Summary is the at-a-glance card shown above a section.
type Summary struct {
	Caption    string   `yaml:"caption" json:"caption"`
	Controls   string   `yaml:"controls" json:"controls"` // what the seller controls
	Highlights []string `yaml:"highlights" json:"highlights"`
	Motto      string   `yaml:"motto" json:"motto"`
}

// Section is the content for one topic.
type Section struct {
	Topic        Topic           `yaml:"topic" json:"topic"`
	Title        string          `yaml:"title" json:"title"`
	Description  string          `yaml:"description" json:"description"`
	Objective    string          `yaml:"objective" json:"objective"`
	Summary      Summary         `yaml:"summary" json:"summary"`
	Checklist    []ChecklistItem `yaml:"checklist" json:"checklist"`
	CommonErrors []string        `yaml:"common_errors" json:"common_errors"`
}

// Item returns the checklist item with the given id.
func (s Section) Item(id string) (ChecklistItem, bool) {
	for _, item := range s.Checklist {
		if item.ID == id {
			return item, true
		}
	}
	return ChecklistItem{}, false
}

// HasItem reports whether id is one of this section's checklist items.
func (s Section) HasItem(id string) bool {
	_, ok := s.Item(id)
	return ok
}

func (s Section) clone() Section {
	s.Summary.Highlights = cloneStrings(s.Summary.Highlights)
	s.Checklist = append([]ChecklistItem(nil), s.Checklist...)
	s.CommonErrors = cloneStrings(s.CommonErrors)
	return s
}

// Objection is a stock customer pushback with its recommended handling.
type Objection struct {
	ID                string   `yaml:"id" json:"id"`
	Title             string   `yaml:"title" json:"title"`
	ScriptedResponse  string   `yaml:"response" json:"response"`
	RecommendedAction string   `yaml:"action" json:"action"`
	PhrasesToAvoid    []string `yaml:"avoid" json:"avoid"`
}

// ShortAction is the first sentence of the recommended action, used by the
// abridged response view.
func (o Objection) ShortAction() string {
	first, _, _ := strings.Cut(o.RecommendedAction, ".")
	first = strings.TrimSpace(first)
	if first == "" {
		return ""
	}
	return first + "."
}

func (o Objection) clone() Objection {
	o.PhrasesToAvoid = cloneStrings(o.PhrasesToAvoid)
	return o
}

// Scenario maps a real-world symptom to a canned navigation state.
type Scenario struct {
	ID         string   `yaml:"id" json:"id"`
	Label      string   `yaml:"label" json:"label"`
	Topic      Topic    `yaml:"topic" json:"topic"`
	Highlights []string `yaml:"highlights" json:"highlights"`
	Objection  string   `yaml:"objection,omitempty" json:"objection,omitempty"` // empty = none
}

func (s Scenario) clone() Scenario {
	s.Highlights = cloneStrings(s.Highlights)
	return s
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
