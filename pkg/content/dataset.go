package content

// Dataset is the complete, immutable playbook.
type Dataset struct {
	sections   map[Topic]Section
	objections []Objection
	scenarios  []Scenario

	objectionIndex map[string]int
	scenarioIndex  map[string]int
	// itemTopics lists, per item id, the topics whose checklist holds it.
	itemTopics map[string][]Topic
}

// Section returns the content for topic t.
func (d *Dataset) Section(t Topic) (Section, bool) {
	s, ok := d.sections[t]
	if !ok {
		return Section{}, false
	}
	return s.clone(), true
}

// Sections returns every section in tab order.
func (d *Dataset) Sections() []Section {
	out := make([]Section, 0, len(d.sections))
	for _, t := range Topics() {
		if s, ok := d.sections[t]; ok {
			out = append(out, s.clone())
		}
	}
	return out
}

// Objections returns the flat objection list in dataset order.
func (d *Dataset) Objections() []Objection {
	out := make([]Objection, len(d.objections))
	for i, o := range d.objections {
		out[i] = o.clone()
	}
	return out
}

// Objection looks up an objection by id.
func (d *Dataset) Objection(id string) (Objection, bool) {
	i, ok := d.objectionIndex[id]
	if !ok {
		return Objection{}, false
	}
	return d.objections[i].clone(), true
}

// Scenarios returns the scenario catalog in dataset order.
func (d *Dataset) Scenarios() []Scenario {
	out := make([]Scenario, len(d.scenarios))
	for i, s := range d.scenarios {
		out[i] = s.clone()
	}
	return out
}

// Scenario looks up a scenario by id.
func (d *Dataset) Scenario(id string) (Scenario, bool) {
	i, ok := d.scenarioIndex[id]
	if !ok {
		return Scenario{}, false
	}
	return d.scenarios[i].clone(), true
}

// ItemTopics returns the topics whose checklist contains the item id.
// In practice ids are globally unique, so this is zero or one topic.
func (d *Dataset) ItemTopics(id string) []Topic {
	return append([]Topic(nil), d.itemTopics[id]...)
}

// HasItem reports whether any section holds a checklist item with this id.
func (d *Dataset) HasItem(id string) bool {
	return len(d.itemTopics[id]) > 0
}

// ItemCount returns the number of checklist items across all sections.
func (d *Dataset) ItemCount() int {
	n := 0
	for _, s := range d.sections {
		n += len(s.Checklist)
	}
	return n
}
