// Package export turns playbook content into Markdown and JSON views for the
// CLI and the clipboard.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/vanderheijden86/playbook/pkg/content"
)

// Marks reports per-item session state. *session.Session satisfies it.
type Marks interface {
	IsChecked(id string) bool
	IsHighlighted(id string) bool
}

type noMarks struct{}

func (noMarks) IsChecked(string) bool     { return false }
func (noMarks) IsHighlighted(string) bool { return false }

// SectionMarkdown renders one topic. Items are task-list entries; items a
// scenario highlighted are bold with a trailing marker. marks may be nil.
func SectionMarkdown(sec content.Section, marks Marks) string {
	return sectionMarkdown(sec, sec.Checklist, marks)
}

// FilteredSectionMarkdown renders a section with only the given items, used
// when a search query narrowed the checklist.
func FilteredSectionMarkdown(sec content.Section, items []content.ChecklistItem, marks Marks) string {
	return sectionMarkdown(sec, items, marks)
}

func sectionMarkdown(sec content.Section, items []content.ChecklistItem, marks Marks) string {
	if marks == nil {
		marks = noMarks{}
	}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", sec.Title))
	if sec.Description != "" {
		sb.WriteString(sec.Description + "\n\n")
	}
	if sec.Objective != "" {
		sb.WriteString(fmt.Sprintf("**Objetivo:** %s\n\n", sec.Objective))
	}

	if s := sec.Summary; s.Caption != "" || s.Controls != "" || len(s.Highlights) > 0 {
		if s.Caption != "" {
			sb.WriteString(fmt.Sprintf("> %s\n", s.Caption))
		}
		if s.Controls != "" {
			sb.WriteString(fmt.Sprintf(">\n> Controlás: %s\n>\n", s.Controls))
		}
		for _, h := range s.Highlights {
			sb.WriteString(fmt.Sprintf("> - **%s**\n", h))
		}
		if s.Motto != "" {
			sb.WriteString(fmt.Sprintf(">\n> *%s*\n", s.Motto))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Checklist\n\n")
	if len(items) == 0 {
		sb.WriteString("*Sin resultados.*\n\n")
	}
	for _, item := range items {
		box := " "
		if marks.IsChecked(item.ID) {
			box = "x"
		}
		label := item.Label
		if marks.IsHighlighted(item.ID) {
			label = fmt.Sprintf("**%s** ◀", label)
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", box, label))
		if item.Body != "" {
			for _, line := range strings.Split(strings.TrimRight(item.Body, "\n"), "\n") {
				sb.WriteString(fmt.Sprintf("  %s\n", line))
			}
		}
	}
	sb.WriteString("\n")

	if len(sec.CommonErrors) > 0 {
		sb.WriteString("## Errores comunes\n\n")
		for _, e := range sec.CommonErrors {
			sb.WriteString(fmt.Sprintf("- %s\n", e))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ObjectionMarkdown renders an objection. The abridged form carries the
// script and the first sentence of the action; the full form adds the whole
// action and the phrases to avoid.
func ObjectionMarkdown(o content.Objection, full bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## \"%s\"\n\n", o.Title))
	sb.WriteString(fmt.Sprintf("**Respuesta:** %s\n\n", o.ScriptedResponse))

	if !full {
		if short := o.ShortAction(); short != "" {
			sb.WriteString(fmt.Sprintf("**Acción:** %s\n", short))
		}
		return sb.String()
	}

	if o.RecommendedAction != "" {
		sb.WriteString(fmt.Sprintf("**Acción:** %s\n\n", o.RecommendedAction))
	}
	if len(o.PhrasesToAvoid) > 0 {
		sb.WriteString("**Evitar decir:**\n\n")
		for _, p := range o.PhrasesToAvoid {
			sb.WriteString(fmt.Sprintf("- ~~%s~~\n", p))
		}
	}
	return sb.String()
}

// ObjectionsMarkdown renders a list of objections under one heading.
func ObjectionsMarkdown(objs []content.Objection, full bool) string {
	var sb strings.Builder
	sb.WriteString("# Objeciones\n\n")
	if len(objs) == 0 {
		sb.WriteString("*Sin resultados.*\n")
		return sb.String()
	}
	for i, o := range objs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(ObjectionMarkdown(o, full))
	}
	return sb.String()
}

// SaveMarkdownToFile writes a rendered document to filename.
func SaveMarkdownToFile(doc, filename string) error {
	if err := os.WriteFile(filename, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}
