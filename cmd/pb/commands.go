package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/playbook/pkg/config"
	"github.com/vanderheijden86/playbook/pkg/content"
	"github.com/vanderheijden86/playbook/pkg/export"
	"github.com/vanderheijden86/playbook/pkg/session"
	"github.com/vanderheijden86/playbook/pkg/version"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		full   bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "show [topic]",
		Short: "Print a topic and the objection guide as Markdown",
		Long: `Print a topic's checklist, common errors and the objection guide.

Topic is one of traffic, conversion or ticket-size (default from config).
On a terminal the Markdown is styled; otherwise it is printed as-is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := a.cfg.UI.DefaultTopic
			if len(args) == 1 {
				t, err := parseTopicArg(args[0])
				if err != nil {
					return err
				}
				topic = t
			}
			sec, ok := a.ds.Section(topic)
			if !ok {
				return fmt.Errorf("%w: topic %q", session.ErrUnknownEntity, topic)
			}

			doc := export.SectionMarkdown(sec, nil) + "\n" + export.ObjectionsMarkdown(a.ds.Objections(), full)
			if output != "" {
				if err := export.SaveMarkdownToFile(doc, output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
				return nil
			}
			return writeMarkdown(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Show full objection responses (action + phrases to avoid)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write raw Markdown to a file instead of stdout")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		topicFlag string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Filter a topic's checklist and the objections by free text",
		Long: `Search matches case-insensitively: "TRÁFICO" finds "Tráfico". Accents
must match; "trafico" does not find "Tráfico".

Checklist items match on label or body; objections match on title only.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newSession()
			if topicFlag != "" {
				t, err := parseTopicArg(topicFlag)
				if err != nil {
					return err
				}
				if err := s.SetActiveTopic(t); err != nil {
					return err
				}
			}
			s.SetSearchQuery(strings.Join(args, " "))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), export.NewSearchView(s))
			}
			doc := export.FilteredSectionMarkdown(s.ActiveSection(), s.VisibleChecklist(), s) +
				"\n" + export.ObjectionsMarkdown(s.VisibleObjections(), s.ResponseDetailExpanded())
			return writeMarkdown(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().StringVarP(&topicFlag, "topic", "t", "", "Topic to search (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newObjectionCmd(a *app) *cobra.Command {
	var full, asJSON bool
	cmd := &cobra.Command{
		Use:   "objection <id>",
		Short: "Print the scripted answer to one objection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, ok := a.ds.Objection(args[0])
			if !ok {
				return fmt.Errorf("%w: objection %q (known: %s)", session.ErrUnknownEntity, args[0], strings.Join(objectionIDs(a.ds), ", "))
			}
			full = full || a.cfg.UI.ExpandedResponses
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), export.NewObjectionView(o, full))
			}
			return writeMarkdown(cmd.OutOrStdout(), export.ObjectionMarkdown(o, full))
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Show the full action and the phrases to avoid")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newScenarioCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scenario [id]",
		Short: "Apply a \"¿Qué está pasando?\" scenario and print the result",
		Long: `Run a scenario on a fresh session and print where it leads: the topic,
the highlighted checklist items and, for some scenarios, an objection.

Without an id on a terminal, pb asks which scenario to run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newSession()

			var id string
			switch {
			case len(args) == 1:
				id = args[0]
			case isTerminal():
				chosen, err := promptScenario(s.Scenarios())
				if err != nil {
					return err
				}
				id = chosen
			default:
				return fmt.Errorf("scenario id required (see 'pb scenarios')")
			}

			if err := s.RunScenario(id); err != nil {
				return err
			}
			sc, _ := a.ds.Scenario(id)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), export.NewScenarioResultView(sc, s))
			}
			var sb strings.Builder
			sb.WriteString(fmt.Sprintf("> Escenario: **%s**\n\n", sc.Label))
			sb.WriteString(export.SectionMarkdown(s.ActiveSection(), s))
			if o, ok := s.Objection(); ok {
				sb.WriteString("\n")
				sb.WriteString(export.ObjectionMarkdown(o, s.ResponseDetailExpanded()))
			}
			return writeMarkdown(cmd.OutOrStdout(), sb.String())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newScenariosCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenario catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := a.ds.Scenarios()
			if asJSON {
				views := make([]export.ScenarioView, 0, len(scenarios))
				for _, sc := range scenarios {
					views = append(views, export.NewScenarioView(sc))
				}
				return writeJSON(cmd.OutOrStdout(), views)
			}
			w := cmd.OutOrStdout()
			for _, sc := range scenarios {
				fmt.Fprintf(w, "%-32s %-28s %s\n", sc.ID, sc.Label, sc.Topic)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configFile()
			if path == "" {
				return errors.New("cannot determine config directory")
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configFile()
			if path == "" {
				return errors.New("cannot determine config directory")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			var err error
			if a.configPath != "" {
				err = config.SaveTo(config.DefaultConfig(), a.configPath)
			} else {
				err = config.Save(config.DefaultConfig())
			}
			if err != nil {
				return err
			}
			a.logger.Info("config written", zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pb version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pb %s\n", version.Version)
		},
	}
}

func parseTopicArg(s string) (content.Topic, error) {
	t, ok := content.ParseTopic(s)
	if !ok {
		return "", fmt.Errorf("%w: topic %q (want traffic, conversion or ticket-size)", session.ErrUnknownEntity, s)
	}
	return t, nil
}

func objectionIDs(ds *content.Dataset) []string {
	objs := ds.Objections()
	ids := make([]string, 0, len(objs))
	for _, o := range objs {
		ids = append(ids, o.ID)
	}
	return ids
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// writeMarkdown styles doc with glamour when w is a terminal.
func writeMarkdown(w io.Writer, doc string) error {
	if tty, width := outputTerminal(w); tty {
		rendered, err := export.RenderTerminal(doc, width, true)
		if err == nil {
			_, err = io.WriteString(w, rendered)
			return err
		}
	}
	_, err := io.WriteString(w, doc)
	return err
}
