package content_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/playbook/pkg/content"
)

func TestDefaultHasAllTopics(t *testing.T) {
	ds, err := content.Default()
	if err != nil {
		t.Fatalf("builtin playbook failed to load: %v", err)
	}

	for _, topic := range content.Topics() {
		s, ok := ds.Section(topic)
		if !ok {
			t.Fatalf("missing section %q", topic)
		}
		if len(s.Checklist) == 0 {
			t.Errorf("section %q has an empty checklist", topic)
		}
		if len(s.CommonErrors) == 0 {
			t.Errorf("section %q has no common errors", topic)
		}
		if s.Title == "" || s.Objective == "" {
			t.Errorf("section %q missing title or objective", topic)
		}
	}

	if got := len(ds.Objections()); got != 8 {
		t.Errorf("expected 8 objections, got %d", got)
	}
	if got := ds.ItemCount(); got != 13 {
		t.Errorf("expected 13 checklist items, got %d", got)
	}
}

func TestDefaultScenarioCatalog(t *testing.T) {
	ds := content.MustDefault()

	var ids []string
	for _, s := range ds.Scenarios() {
		ids = append(ids, s.ID)
	}
	want := "no-customers-entering,customers-leave-without-buying,single-item-purchases,price-objection"
	if got := strings.Join(ids, ","); got != want {
		t.Fatalf("scenario order = %s, want %s", got, want)
	}

	price, ok := ds.Scenario("price-objection")
	if !ok {
		t.Fatal("price-objection scenario missing")
	}
	obj, ok := ds.Objection(price.Objection)
	if !ok || obj.Title != "Está caro" {
		t.Errorf("price-objection should select \"Está caro\", got %+v", obj)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	ds := content.MustDefault()

	s, _ := ds.Section(content.TopicTraffic)
	s.Checklist[0].ID = "mutated"
	s.CommonErrors[0] = "mutated"

	again, _ := ds.Section(content.TopicTraffic)
	if again.Checklist[0].ID != "storefront-display" {
		t.Errorf("section checklist leaked mutation: %q", again.Checklist[0].ID)
	}
	if again.CommonErrors[0] == "mutated" {
		t.Error("section errors leaked mutation")
	}

	objs := ds.Objections()
	objs[0].PhrasesToAvoid[0] = "mutated"
	if o, _ := ds.Objection(objs[0].ID); o.PhrasesToAvoid[0] == "mutated" {
		t.Error("objection phrases leaked mutation")
	}
}

func TestShortAction(t *testing.T) {
	tests := []struct {
		action string
		want   string
	}{
		{"Mostrar detalle de terminación al tacto. Ofrecer cuotas.", "Mostrar detalle de terminación al tacto."},
		{"Dar espacio (2-3 metros). Intervenir a los 45s.", "Dar espacio (2-3 metros)."},
		{"Sin punto final", "Sin punto final."},
		{"", ""},
	}
	for _, tt := range tests {
		o := content.Objection{RecommendedAction: tt.action}
		if got := o.ShortAction(); got != tt.want {
			t.Errorf("ShortAction(%q) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestChecklistItemText(t *testing.T) {
	item := content.ChecklistItem{Label: "Saludo 10s:", Body: "Contacto visual."}
	if got := item.Text(); got != "Saludo 10s: Contacto visual." {
		t.Errorf("Text() = %q", got)
	}
	if got := (content.ChecklistItem{Body: "solo"}).Text(); got != "solo" {
		t.Errorf("Text() without label = %q", got)
	}
}

func TestParseTopic(t *testing.T) {
	if topic, ok := content.ParseTopic(" Ticket-Size "); !ok || topic != content.TopicTicketSize {
		t.Errorf("ParseTopic failed: %q %v", topic, ok)
	}
	if _, ok := content.ParseTopic("trafico"); ok {
		t.Error("expected unknown topic to be rejected")
	}
}

const minimalPlaybook = `
sections:
  - topic: traffic
    checklist:
      - {id: a, body: uno}
  - topic: conversion
    checklist:
      - {id: b, body: dos}
  - topic: ticket-size
    checklist:
      - {id: c, body: tres}
objections:
  - {id: x, title: Equis, action: Hacer algo.}
scenarios:
  - {id: s1, label: Uno, topic: conversion, highlights: [b], objection: x}
`

func TestParseMinimal(t *testing.T) {
	ds, err := content.Parse([]byte(minimalPlaybook))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if topics := ds.ItemTopics("b"); len(topics) != 1 || topics[0] != content.TopicConversion {
		t.Errorf("ItemTopics(b) = %v", topics)
	}
	if ds.HasItem("zzz") {
		t.Error("HasItem should be false for unknown id")
	}
}

func TestParseRejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		issue string
	}{
		{
			name:  "missing topic",
			yaml:  "sections:\n  - {topic: traffic}\n  - {topic: conversion}\n",
			issue: `missing topic "ticket-size"`,
		},
		{
			name:  "duplicate item",
			yaml:  strings.Replace(minimalPlaybook, "{id: a, body: uno}", "{id: a, body: uno}\n      - {id: a, body: otra}", 1),
			issue: `repeats checklist id "a"`,
		},
		{
			name:  "highlight outside topic",
			yaml:  strings.Replace(minimalPlaybook, "highlights: [b]", "highlights: [a]", 1),
			issue: `highlights "a"`,
		},
		{
			name:  "unknown objection",
			yaml:  strings.Replace(minimalPlaybook, "objection: x", "objection: nope", 1),
			issue: `unknown objection "nope"`,
		},
		{
			name:  "unknown topic",
			yaml:  strings.Replace(minimalPlaybook, "topic: traffic", "topic: trafico", 1),
			issue: `unknown topic "trafico"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, content.ErrInvalidDataset) {
				t.Fatalf("expected ErrInvalidDataset, got %v", err)
			}
			var le *content.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.issue) {
				t.Errorf("error %q does not mention %q", err, tt.issue)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playbook.yaml")
	if err := os.WriteFile(path, []byte(minimalPlaybook), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := content.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := ds.Scenario("s1"); !ok {
		t.Error("expected scenario s1")
	}

	if _, err := content.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("sections: [:"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := content.LoadFile(bad); err == nil {
		t.Error("expected YAML error")
	}
}
