package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xlsdg/flowerpass/internal/db"
	"github.com/xlsdg/flowerpass/internal/i18n"
)

func newTestModel(t *testing.T) generateModel {
	t.Helper()
	i18n.Init("en")
	return newGenerateModel(16)
}

// submitModel fills the form and runs submit, returning the updated model.
func submitModel(t *testing.T, m generateModel, master, key, length string) generateModel {
	t.Helper()
	m.inputs[inputMaster].SetValue(master)
	m.inputs[inputKey].SetValue(key)
	m.inputs[inputLength].SetValue(length)
	next, _ := m.submit()
	got, ok := next.(generateModel)
	if !ok {
		t.Fatalf("submit returned unexpected model type %T", next)
	}
	return got
}

func TestNewGenerateModel(t *testing.T) {
	m := newTestModel(t)

	if len(m.inputs) != numInputs {
		t.Fatalf("expected %d inputs, got %d", numInputs, len(m.inputs))
	}
	if m.inputs[inputMaster].EchoMode != textinput.EchoPassword {
		t.Fatalf("master input must hide its value")
	}
	if m.inputs[inputLength].Placeholder != "16" {
		t.Fatalf("length placeholder should show the default, got %q", m.inputs[inputLength].Placeholder)
	}
	if m.focusIndex != inputMaster {
		t.Fatalf("expected initial focus on master input, got %d", m.focusIndex)
	}
}

func TestSubmit_DerivesPassword(t *testing.T) {
	m := newTestModel(t)

	m = submitModel(t, m, "test", "github.com", "16")
	if m.err != nil {
		t.Fatalf("submit failed: %v", m.err)
	}
	if m.result != "D04175F7A9c7Ab4a" {
		t.Fatalf("unexpected derived password: %q", m.result)
	}
	if m.resultKey != "github.com" {
		t.Fatalf("unexpected result key: %q", m.resultKey)
	}
}

func TestSubmit_EmptyLengthFallsBackToDefault(t *testing.T) {
	m := newTestModel(t)

	m = submitModel(t, m, "test", "github.com", "")
	if m.err != nil {
		t.Fatalf("submit failed: %v", m.err)
	}
	if len(m.result) != 16 {
		t.Fatalf("expected default length 16, got %d (%q)", len(m.result), m.result)
	}
}

func TestSubmit_UsesRegisteredLength(t *testing.T) {
	dsn := "file:tui_" + t.Name() + "?mode=memory&cache=shared"
	if err := db.InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { db.SetStore(nil) })
	if _, err := db.AddSite("example.com", 12, "", ""); err != nil {
		t.Fatalf("AddSite failed: %v", err)
	}

	m := newTestModel(t)
	m = submitModel(t, m, "mypassword", "example.com", "")
	if m.err != nil {
		t.Fatalf("submit failed: %v", m.err)
	}
	if m.result != "K0CA12CecFFB" {
		t.Fatalf("expected registered length 12 to apply, got %q", m.result)
	}
}

func TestSubmit_RejectsEmptyInputs(t *testing.T) {
	m := newTestModel(t)

	m = submitModel(t, m, "", "", "")
	if m.err == nil {
		t.Fatalf("expected error for empty inputs")
	}
	if m.result != "" {
		t.Fatalf("expected no result, got %q", m.result)
	}
}

func TestSubmit_RejectsBadLength(t *testing.T) {
	m := newTestModel(t)

	m = submitModel(t, m, "password", "key", "1")
	if m.err == nil {
		t.Fatalf("expected error for out-of-range length")
	}
	if !strings.Contains(m.err.Error(), "Length must be between 2 and 32, got: 1") {
		t.Fatalf("unexpected error text: %v", m.err)
	}
}

func TestResultView_NewStartsOver(t *testing.T) {
	m := newTestModel(t)
	m = submitModel(t, m, "test", "github.com", "16")
	if m.result == "" {
		t.Fatalf("expected a result before pressing n")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	got := next.(generateModel)
	if got.result != "" || got.resultKey != "" {
		t.Fatalf("expected result to be cleared, got %q", got.result)
	}
	if got.inputs[inputKey].Value() != "" {
		t.Fatalf("expected key input to be cleared")
	}
	if got.inputs[inputMaster].Value() != "test" {
		t.Fatalf("master input should be kept for the next derivation")
	}
}

func TestView_FormAndResult(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, i18n.T("tui.generate_button")) {
		t.Fatalf("form view missing generate button:\n%s", view)
	}

	m = submitModel(t, m, "test", "github.com", "16")
	view = m.View()
	if !strings.Contains(view, "D04175F7A9c7Ab4a") {
		t.Fatalf("result view missing derived password:\n%s", view)
	}
	if !strings.Contains(view, "github.com") {
		t.Fatalf("result view missing key:\n%s", view)
	}
}
