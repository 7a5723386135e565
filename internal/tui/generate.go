package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xlsdg/flowerpass/fpcode"
	"github.com/xlsdg/flowerpass/internal/db"
	"github.com/xlsdg/flowerpass/internal/i18n"
	"github.com/xlsdg/flowerpass/internal/security"
)

// Input indexes for the generate form.
const (
	inputMaster = iota
	inputKey
	inputLength
	numInputs
)

type generateModel struct {
	focusIndex int
	inputs     []textinput.Model
	err        error

	// result state; when result is non-empty the model shows the derived
	// password instead of the form.
	result    string
	resultKey string
	copied    bool

	defaultLength int
}

func newGenerateModel(defaultLength int) generateModel {
	m := generateModel{
		inputs:        make([]textinput.Model, numInputs),
		defaultLength: defaultLength,
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 40

		switch i {
		case inputMaster:
			t.Prompt = i18n.T("tui.master_prompt") + ": "
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		case inputKey:
			t.Prompt = i18n.T("tui.key_prompt") + ": "
			t.Placeholder = "github.com"
			// Offer registered sites as completions.
			if db.IsInitialized() {
				if sites, err := db.GetAllSites(); err == nil {
					keys := make([]string, 0, len(sites))
					for _, s := range sites {
						keys = append(keys, s.Key)
					}
					t.ShowSuggestions = true
					t.SetSuggestions(keys)
				}
			}
		case inputLength:
			t.Prompt = i18n.T("tui.length_prompt") + ": "
			t.Placeholder = strconv.Itoa(defaultLength)
			t.CharLimit = 2
			t.Width = 4
		}
		m.inputs[i] = t
	}

	m.inputs[inputMaster].Focus()
	m.inputs[inputMaster].TextStyle = focusedStyle

	return m
}

func (m generateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.result != "" {
			return m.updateResult(msg)
		}
		return m.updateForm(msg)
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

// updateForm handles key presses while the form is showing.
func (m generateModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "shift+tab", "enter", "up", "down":
		s := msg.String()

		// Enter on the generate button (or in the last input) submits.
		if s == "enter" && m.focusIndex >= numInputs-1 {
			return m.submit()
		}

		if s == "up" || s == "shift+tab" {
			m.focusIndex--
		} else {
			m.focusIndex++
		}
		if m.focusIndex > numInputs {
			m.focusIndex = 0
		} else if m.focusIndex < 0 {
			m.focusIndex = numInputs
		}

		cmds := make([]tea.Cmd, len(m.inputs))
		for i := range m.inputs {
			if i == m.focusIndex {
				cmds[i] = m.inputs[i].Focus()
				m.inputs[i].TextStyle = focusedStyle
				continue
			}
			m.inputs[i].Blur()
			m.inputs[i].TextStyle = blurredStyle
		}
		return m, tea.Batch(cmds...)
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

// updateResult handles key presses while the derived password is showing.
func (m generateModel) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "c":
		if err := clipboard.WriteAll(m.result); err != nil {
			m.err = err
			return m, nil
		}
		m.copied = true
		return m, nil
	case "n":
		m.result = ""
		m.resultKey = ""
		m.copied = false
		m.err = nil
		m.inputs[inputKey].SetValue("")
		return m, nil
	}
	return m, nil
}

// submit derives the password from the current form values.
func (m generateModel) submit() (tea.Model, tea.Cmd) {
	master := security.FromString(m.inputs[inputMaster].Value())
	key := strings.TrimSpace(m.inputs[inputKey].Value())

	if len(master) == 0 || key == "" {
		m.err = fmt.Errorf("master password and key cannot be empty")
		return m, nil
	}

	length := m.defaultLength
	if v := strings.TrimSpace(m.inputs[inputLength].Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			m.err = fmt.Errorf("length must be a number, got %q", v)
			return m, nil
		}
		length = n
	} else if db.IsInitialized() {
		// No explicit length: prefer the registered one for this key.
		if site, err := db.GetSiteByKey(key); err == nil && site != nil {
			length = site.Length
		}
	}

	var result string
	err := master.Use(func(b []byte) error {
		var derr error
		result, derr = fpcode.Code(string(b), key, length)
		return derr
	})
	master.Zero()
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.copied = false
	m.result = result
	m.resultKey = key
	return m, nil
}

func (m *generateModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m generateModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(i18n.T("tui.title")))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(i18n.T("tui.subtitle")))
	b.WriteString("\n\n")

	if m.result != "" {
		b.WriteString(i18n.T("tui.result_title") + " (" + m.resultKey + "):\n\n")
		b.WriteString(resultStyle.Render(m.result))
		b.WriteString("\n\n")
		if m.copied {
			b.WriteString(successStyle.Render(i18n.T("tui.copied")) + "\n")
		}
		if m.err != nil {
			b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
		}
		b.WriteString(helpStyle.Render(i18n.T("tui.help_result")))
		return docStyle.Render(b.String())
	}

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteByte('\n')
	}

	button := blurredStyle.Render(i18n.T("tui.generate_button"))
	if m.focusIndex == numInputs {
		button = focusedStyle.Render(i18n.T("tui.generate_button"))
	}
	b.WriteString("\n" + button + "\n")

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(i18n.T("tui.help_form")))
	return docStyle.Render(b.String())
}

// Run launches the interactive generate view. defaultLength is used when the
// length field is left empty and the key is not in the site registry.
func Run(defaultLength int) error {
	if defaultLength < fpcode.MinLength || defaultLength > fpcode.MaxLength {
		defaultLength = 16
	}
	p := tea.NewProgram(newGenerateModel(defaultLength))
	_, err := p.Run()
	return err
}
