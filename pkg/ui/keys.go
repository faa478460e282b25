package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding of the playbook view. It implements
// help.KeyMap for the footer and the ? overlay.
type keyMap struct {
	Topic1     key.Binding
	Topic2     key.Binding
	Topic3     key.Binding
	PrevTopic  key.Binding
	NextTopic  key.Binding
	Focus      key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Search     key.Binding
	Detail     key.Binding
	Scenario   key.Binding
	Reset      key.Binding
	Copy       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Help       key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	PickerUp   key.Binding
	PickerDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Topic1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tráfico"),
		),
		Topic2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "conversión"),
		),
		Topic3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "ticket"),
		),
		PrevTopic: key.NewBinding(
			key.WithKeys("[", "left", "h"),
			key.WithHelp("[", "tema anterior"),
		),
		NextTopic: key.NewBinding(
			key.WithKeys("]", "right", "l"),
			key.WithHelp("]", "tema siguiente"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "checklist/objeciones"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "subir"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "bajar"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "marcar/elegir"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "buscar"),
		),
		Detail: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "respuesta completa"),
		),
		Scenario: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "¿qué está pasando?"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reiniciar"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copiar objeción"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll arriba"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll abajo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "aplicar"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancelar"),
		),
		PickerUp: key.NewBinding(
			key.WithKeys("k", "up"),
		),
		PickerDown: key.NewBinding(
			key.WithKeys("j", "down"),
		),
	}
}

// ShortHelp is the one-line footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Search, k.Scenario, k.Detail, k.Help, k.Quit}
}

// FullHelp is the ? overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Topic1, k.Topic2, k.Topic3, k.PrevTopic, k.NextTopic},
		{k.Focus, k.Up, k.Down, k.Toggle, k.PageUp, k.PageDown},
		{k.Search, k.Detail, k.Scenario, k.Reset, k.Copy},
		{k.Help, k.Quit},
	}
}
