// Package scenario turns a coarse business symptom ("no customers are
// coming in") into the concrete state change that guides staff to the right
// part of the playbook: which topic to open, which checklist items to
// highlight, and which objection to preselect.
//
// The table itself lives in the dataset; this package resolves ids against
// it and produces patches. Applying a patch is the session's job.
package scenario

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/playbook/pkg/content"
)

// Builtin scenario ids shipped with the default playbook.
const (
	NoCustomersEntering         = "no-customers-entering"
	CustomersLeaveWithoutBuying = "customers-leave-without-buying"
	SingleItemPurchases         = "single-item-purchases"
	PriceObjection              = "price-objection"
)

// ErrInvalidScenario is returned for ids that are not in the catalog.
var ErrInvalidScenario = errors.New("invalid scenario")

// Patch is the state a scenario leaves behind once applied on top of a reset.
type Patch struct {
	ScenarioID string
	Topic      content.Topic
	Highlights []string
	Objection  string // empty = none
}

// Resolver maps scenario ids to patches for one dataset.
type Resolver struct {
	ds *content.Dataset
}

// NewResolver creates a resolver over ds.
func NewResolver(ds *content.Dataset) *Resolver {
	return &Resolver{ds: ds}
}

// Resolve returns the patch for id. Unknown ids yield ErrInvalidScenario and
// an empty patch; nothing is partially resolved.
func (r *Resolver) Resolve(id string) (Patch, error) {
	sc, ok := r.ds.Scenario(id)
	if !ok {
		return Patch{}, fmt.Errorf("%w: %q", ErrInvalidScenario, id)
	}
	return Patch{
		ScenarioID: sc.ID,
		Topic:      sc.Topic,
		Highlights: sc.Highlights,
		Objection:  sc.Objection,
	}, nil
}

// Catalog lists the available scenarios in display order.
func (r *Resolver) Catalog() []content.Scenario {
	return r.ds.Scenarios()
}
