package export

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/scenario"
	"github.com/vanderheijden86/playbook/pkg/session"
)

func TestNewObjectionView(t *testing.T) {
	o, _ := content.MustDefault().Objection("too-expensive")

	short := NewObjectionView(o, false)
	if short.Action != "Mostrar detalle de terminación al tacto." || short.Avoid != nil || short.Full {
		t.Errorf("unexpected short view: %+v", short)
	}

	full := NewObjectionView(o, true)
	if full.Action != o.RecommendedAction || !full.Full {
		t.Errorf("unexpected full view: %+v", full)
	}
	if diff := cmp.Diff([]string{"Es lo que vale", "No tenemos nada más barato"}, full.Avoid); diff != "" {
		t.Errorf("avoid (-want +got):\n%s", diff)
	}
}

func TestNewSearchView(t *testing.T) {
	s := session.New(content.MustDefault())
	s.SetSearchQuery("caro")

	v := NewSearchView(s)
	if v.Query != "caro" || v.Topic != content.TopicTraffic {
		t.Errorf("unexpected header: %+v", v)
	}
	if len(v.Objections) != 1 || v.Objections[0].Title != "Está caro" {
		t.Errorf("expected only Está caro, got %+v", v.Objections)
	}
	if v.Checklist == nil {
		t.Error("checklist should encode as [] not null")
	}
}

func TestNewScenarioResultView(t *testing.T) {
	s := session.New(content.MustDefault())
	sc, _ := content.MustDefault().Scenario(scenario.PriceObjection)
	if err := s.RunScenario(sc.ID); err != nil {
		t.Fatal(err)
	}

	v := NewScenarioResultView(sc, s)
	if v.Scenario.ID != scenario.PriceObjection || v.State.ActiveTopic != content.TopicConversion {
		t.Errorf("unexpected result: %+v", v)
	}
	if v.Objection == nil || v.Objection.ID != "too-expensive" {
		t.Fatalf("expected selected objection, got %+v", v.Objection)
	}

	var highlighted []string
	for _, it := range v.Section.Checklist {
		if it.Highlighted {
			highlighted = append(highlighted, it.ID)
		}
	}
	if diff := cmp.Diff([]string{"rescue-attempt"}, highlighted); diff != "" {
		t.Errorf("highlighted (-want +got):\n%s", diff)
	}
}
