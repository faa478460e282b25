package filter_test

import (
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/filter"
)

func ids(items []content.ChecklistItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"Tráfico", "TRÁFICO"},
		{"Tráfico", "tra\u0301fico"}, // decomposed accent
		{"Conversión", "CONVERSIÓN"},
		{"Señalar", "SEÑALAR"},
	}
	for _, tt := range tests {
		if filter.Fold(tt.a) != filter.Fold(tt.b) {
			t.Errorf("Fold(%q) != Fold(%q)", tt.a, tt.b)
		}
	}
	if filter.Fold("tráfico") == filter.Fold("trafico") {
		t.Error("folding must not strip accents")
	}
}

func TestVisibleChecklist(t *testing.T) {
	ds := content.MustDefault()
	traffic, _ := ds.Section(content.TopicTraffic)
	ticket, _ := ds.Section(content.TopicTicketSize)

	tests := []struct {
		name    string
		section content.Section
		query   string
		want    []string
	}{
		{"empty query keeps all", traffic, "", []string{"storefront-display", "promo-sign", "entry-point", "floor-energy"}},
		{"label match", traffic, "VIDRIERA", []string{"storefront-display"}},
		{"body match", traffic, "cuotas", []string{"promo-sign"}},
		{"accented query", traffic, "ENERGÍA", []string{"floor-energy"}},
		{"multi-line body", ticket, "combos rápidos", []string{"build-outfit"}},
		{"whitespace is literal", traffic, "  ", nil},
		{"no match", traffic, "descuento", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(filter.VisibleChecklist(tt.section, tt.query))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("VisibleChecklist(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestVisibleObjectionsCaro(t *testing.T) {
	ds := content.MustDefault()

	for _, q := range []string{"caro", "CARO", "Caro"} {
		got := filter.VisibleObjections(ds.Objections(), q)
		if len(got) != 1 || got[0].Title != "Está caro" {
			t.Errorf("query %q: expected only \"Está caro\", got %+v", q, got)
		}
	}
}

func TestVisibleObjectionsTitleOnly(t *testing.T) {
	ds := content.MustDefault()

	// "algodón" appears in responses but in no title.
	if got := filter.VisibleObjections(ds.Objections(), "algodón"); len(got) != 0 {
		t.Errorf("expected title-only matching, got %d results", len(got))
	}
	if got := filter.VisibleObjections(ds.Objections(), ""); len(got) != len(ds.Objections()) {
		t.Errorf("empty query should return all objections, got %d", len(got))
	}
}

// lowerContains is a reference matcher built from plain lowercasing. It
// agrees with full case folding on the Spanish alphabet queryGen draws from.
func lowerContains(text, query string) bool {
	lower := func(s string) string { return strings.ToLower(norm.NFC.String(s)) }
	return strings.Contains(lower(text), lower(query))
}

// queryAlphabet keeps random queries inside the letters where lowercasing
// and case folding coincide.
var queryAlphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZáéíóúñÁÉÍÓÚÑü ¿?.,:")

// queryGen draws either a random string or a re-cased substring of a real
// dataset text, so both matching and non-matching queries are exercised.
func queryGen(ds *content.Dataset) *rapid.Generator[string] {
	var corpus []string
	for _, s := range ds.Sections() {
		for _, item := range s.Checklist {
			corpus = append(corpus, item.Label, item.Body)
		}
	}
	for _, o := range ds.Objections() {
		corpus = append(corpus, o.Title)
	}

	return rapid.Custom(func(t *rapid.T) string {
		if rapid.Bool().Draw(t, "random") {
			return rapid.StringOf(rapid.RuneFrom(queryAlphabet)).Draw(t, "s")
		}
		src := []rune(rapid.SampledFrom(corpus).Draw(t, "src"))
		if len(src) == 0 {
			return ""
		}
		i := rapid.IntRange(0, len(src)-1).Draw(t, "i")
		j := rapid.IntRange(i, len(src)).Draw(t, "j")
		q := string(src[i:j])
		if rapid.Bool().Draw(t, "upper") {
			q = strings.ToUpper(q)
		}
		return q
	})
}

func TestVisibleChecklistProperties(t *testing.T) {
	ds := content.MustDefault()
	queries := queryGen(ds)

	rapid.Check(t, func(t *rapid.T) {
		topic := rapid.SampledFrom(content.Topics()).Draw(t, "topic")
		section, _ := ds.Section(topic)
		q := queries.Draw(t, "query")

		got := filter.VisibleChecklist(section, q)

		// Subsequence of the checklist, preserving order, containing
		// exactly the matching items.
		next := 0
		for _, item := range section.Checklist {
			match := lowerContains(item.Label, q) || lowerContains(item.Body, q)
			if next < len(got) && got[next].ID == item.ID {
				if !match {
					t.Fatalf("item %q returned but does not match %q", item.ID, q)
				}
				next++
				continue
			}
			if match {
				t.Fatalf("item %q matches %q but was dropped", item.ID, q)
			}
		}
		if next != len(got) {
			t.Fatalf("result is not an ordered subsequence: %v", ids(got))
		}
	})
}

func TestVisibleChecklistEmptyIsIdentity(t *testing.T) {
	ds := content.MustDefault()
	for _, topic := range content.Topics() {
		section, _ := ds.Section(topic)
		got := ids(filter.VisibleChecklist(section, ""))
		want := ids(section.Checklist)
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("%s: got %v, want %v", topic, got, want)
		}
	}
}

func TestVisibleObjectionsProperties(t *testing.T) {
	ds := content.MustDefault()
	all := ds.Objections()
	queries := queryGen(ds)

	rapid.Check(t, func(t *rapid.T) {
		q := queries.Draw(t, "query")
		got := filter.VisibleObjections(all, q)

		next := 0
		for _, o := range all {
			match := lowerContains(o.Title, q)
			if next < len(got) && got[next].ID == o.ID {
				if !match {
					t.Fatalf("objection %q returned but does not match %q", o.ID, q)
				}
				next++
				continue
			}
			if match {
				t.Fatalf("objection %q matches %q but was dropped", o.ID, q)
			}
		}
		if next != len(got) {
			t.Fatalf("result is not an ordered subsequence")
		}
	})
}
