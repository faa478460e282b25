package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/playbook.yaml
var defaultPlaybook []byte

// ErrInvalidDataset is wrapped by every LoadError.
var ErrInvalidDataset = errors.New("invalid playbook dataset")

// LoadError describes why a dataset could not be built.
type LoadError struct {
	Source string // file path or "builtin"
	Issues []string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Source, ErrInvalidDataset, strings.Join(e.Issues, "; "))
}

func (e *LoadError) Unwrap() error {
	return ErrInvalidDataset
}

// document is the on-disk shape of a playbook file.
type document struct {
	Version    int         `yaml:"version"`
	Sections   []Section   `yaml:"sections"`
	Objections []Objection `yaml:"objections"`
	Scenarios  []Scenario  `yaml:"scenarios"`
}

var (
	defaultOnce sync.Once
	defaultSet  *Dataset
	defaultErr  error
)

// Default returns the builtin playbook. It is parsed once per process.
func Default() (*Dataset, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = parse(defaultPlaybook, "builtin")
	})
	return defaultSet, defaultErr
}

// MustDefault is Default for callers that cannot proceed without the
// builtin data (tests, package-level fixtures).
func MustDefault() *Dataset {
	ds, err := Default()
	if err != nil {
		panic(err)
	}
	return ds
}

// LoadFile reads an alternate playbook from path.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading playbook: %w", err)
	}
	return parse(data, path)
}

// Parse builds a dataset from YAML bytes.
func Parse(data []byte) (*Dataset, error) {
	return parse(data, "inline")
}

func parse(data []byte, source string) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing playbook %s: %w", source, err)
	}
	return build(doc, source)
}

// build indexes the document and checks the references session state relies
// on: every topic present once, unique ids, and scenarios that only point at
// existing items and objections.
func build(doc document, source string) (*Dataset, error) {
	var issues []string
	fail := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	ds := &Dataset{
		sections:       make(map[Topic]Section, len(doc.Sections)),
		objectionIndex: make(map[string]int, len(doc.Objections)),
		scenarioIndex:  make(map[string]int, len(doc.Scenarios)),
		itemTopics:     make(map[string][]Topic),
	}

	for _, s := range doc.Sections {
		if !s.Topic.IsValid() {
			fail("unknown topic %q", s.Topic)
			continue
		}
		if _, dup := ds.sections[s.Topic]; dup {
			fail("topic %q defined more than once", s.Topic)
			continue
		}
		seen := make(map[string]bool, len(s.Checklist))
		for _, item := range s.Checklist {
			switch {
			case item.ID == "":
				fail("topic %q has a checklist item without id", s.Topic)
				continue
			case seen[item.ID]:
				fail("topic %q repeats checklist id %q", s.Topic, item.ID)
				continue
			}
			seen[item.ID] = true
			ds.itemTopics[item.ID] = append(ds.itemTopics[item.ID], s.Topic)
		}
		ds.sections[s.Topic] = s.clone()
	}
	for _, t := range Topics() {
		if _, ok := ds.sections[t]; !ok {
			fail("missing topic %q", t)
		}
	}

	for _, o := range doc.Objections {
		if o.ID == "" {
			fail("objection %q has no id", o.Title)
			continue
		}
		if _, dup := ds.objectionIndex[o.ID]; dup {
			fail("objection id %q repeated", o.ID)
			continue
		}
		ds.objectionIndex[o.ID] = len(ds.objections)
		ds.objections = append(ds.objections, o.clone())
	}

	for _, sc := range doc.Scenarios {
		if sc.ID == "" {
			fail("scenario %q has no id", sc.Label)
			continue
		}
		if _, dup := ds.scenarioIndex[sc.ID]; dup {
			fail("scenario id %q repeated", sc.ID)
			continue
		}
		section, ok := ds.sections[sc.Topic]
		if !ok {
			fail("scenario %q targets unknown topic %q", sc.ID, sc.Topic)
			continue
		}
		for _, id := range sc.Highlights {
			if !section.HasItem(id) {
				fail("scenario %q highlights %q, not an item of %q", sc.ID, id, sc.Topic)
			}
		}
		if sc.Objection != "" {
			if _, ok := ds.objectionIndex[sc.Objection]; !ok {
				fail("scenario %q selects unknown objection %q", sc.ID, sc.Objection)
			}
		}
		ds.scenarioIndex[sc.ID] = len(ds.scenarios)
		ds.scenarios = append(ds.scenarios, sc.clone())
	}

	if len(issues) > 0 {
		return nil, &LoadError{Source: source, Issues: issues}
	}
	return ds, nil
}
