// Package filter derives the visible subset of checklist items and
// objections for a free-text query.
//
// Matching is a plain substring test after Unicode normalization and case
// folding. There is no ranking and no fuzzy matching; results keep their
// original order. An empty query matches everything and whitespace is
// significant.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/metrics"
)

// Fold canonicalizes s for comparison: NFC composition first so that a
// decomposed "a" + U+0301 equals "á", then full Unicode case folding.
func Fold(s string) string {
	if s == "" {
		return s
	}
	// cases.Caser keeps internal state and is not safe for concurrent use.
	return cases.Fold().String(norm.NFC.String(s))
}

// Matches reports whether query occurs in text, ignoring case.
func Matches(text, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(Fold(text), Fold(query))
}

// VisibleChecklist returns the items of section whose label or body contains
// query, in checklist order.
func VisibleChecklist(section content.Section, query string) []content.ChecklistItem {
	defer metrics.Timer(metrics.FilterChecklist)()

	out := make([]content.ChecklistItem, 0, len(section.Checklist))
	if query == "" {
		return append(out, section.Checklist...)
	}
	q := Fold(query)
	for _, item := range section.Checklist {
		if strings.Contains(Fold(item.Label), q) || strings.Contains(Fold(item.Body), q) {
			out = append(out, item)
		}
	}
	return out
}

// VisibleObjections returns the objections whose title contains query, in
// their original order.
func VisibleObjections(objections []content.Objection, query string) []content.Objection {
	defer metrics.Timer(metrics.FilterObjections)()

	out := make([]content.Objection, 0, len(objections))
	if query == "" {
		return append(out, objections...)
	}
	q := Fold(query)
	for _, o := range objections {
		if strings.Contains(Fold(o.Title), q) {
			out = append(out, o)
		}
	}
	return out
}
