package cli

import (
	"errors"
	"testing"

	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScan() ports.ScanResult {
	return ports.ScanResult{
		RunID:        "run-1",
		FilesScanned: 2,
		Signatures: []ports.Signature{
			{
				File:        "a.php",
				Line:        3,
				Function:    "make",
				Qualified:   `\App\make`,
				Namespace:   "App",
				DocTag:      "Foo|int",
				ReturnTypes: []types.Type{types.Object{FQSEN: `\App\Foo`}, types.Scalar{Kind: types.KindInteger}},
			},
			{File: "a.php", Line: 9, Function: "bare", Qualified: `\App\bare`},
		},
		Failures: []ports.FileFailure{{Path: "b.php", Error: "boom"}},
	}
}

func sized(m model) model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(model)
}

func TestModel_PanelsAndDetails(t *testing.T) {
	m := sized(initialModel(ports.ScanResult{}, nil))

	updated, _ := m.Update(updateMsg{result: sampleScan()})
	state, ok := updated.(model)
	require.True(t, ok, "expected model type, got %T", updated)
	assert.Len(t, state.signatureList.Items(), 2)
	assert.Len(t, state.failureList.Items(), 1)
	assert.Contains(t, state.View(), "1 failures")

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyEnter})
	state = updated.(model)
	require.True(t, state.showDetails)
	details := renderSignatureDetails(state)
	assert.Contains(t, details, `Function: \App\make`)
	assert.Contains(t, details, `@return: Foo|int`)
	assert.Contains(t, details, `\App\Foo`)

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyEsc})
	state = updated.(model)
	assert.False(t, state.showDetails)

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyTab})
	state = updated.(model)
	assert.Equal(t, panelFailures, state.mode)

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyTab})
	state = updated.(model)
	assert.Equal(t, panelSignatures, state.mode)
}

func TestModel_ScanError(t *testing.T) {
	m := sized(initialModel(sampleScan(), nil))
	updated, _ := m.Update(updateMsg{err: errors.New("walk failed")})
	state := updated.(model)

	assert.Equal(t, "walk failed", state.scanErr)
	assert.Len(t, state.signatureList.Items(), 2, "previous result is kept")
	assert.Contains(t, state.View(), "Scan failed: walk failed")
}

func TestModel_RescanKey(t *testing.T) {
	called := make(chan struct{}, 1)
	m := initialModel(ports.ScanResult{}, func() { called <- struct{}{} })

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	<-called

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_CleanSummary(t *testing.T) {
	m := initialModel(ports.ScanResult{Signatures: []ports.Signature{{
		Qualified:   `\f`,
		ReturnTypes: []types.Type{types.Scalar{Kind: types.KindVoid}},
	}}}, nil)
	m = sized(m)
	assert.Contains(t, m.View(), "All returns documented")
}

func TestModel_DetailsFollowCursorWithSharedNames(t *testing.T) {
	m := sized(initialModel(ports.ScanResult{Signatures: []ports.Signature{
		{File: "a.php", Line: 3, Function: "helper", Qualified: `\helper`, DocTag: "int",
			ReturnTypes: []types.Type{types.Scalar{Kind: types.KindInteger}}},
		{File: "b.php", Line: 9, Function: "helper", Qualified: `\helper`, DocTag: "string",
			ReturnTypes: []types.Type{types.Scalar{Kind: types.KindString}}},
	}}, nil))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	state := updated.(model)
	require.Equal(t, 1, state.signatureList.Index())

	sig, ok := state.selectedSignature()
	require.True(t, ok)
	assert.Equal(t, "b.php", sig.File)
	assert.Equal(t, 9, sig.Line)

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyEnter})
	details := renderSignatureDetails(updated.(model))
	assert.Contains(t, details, "Location: b.php:9")
	assert.Contains(t, details, "@return: string")
}
