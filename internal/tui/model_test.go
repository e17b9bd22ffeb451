package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgkit/internal/domain"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModelProgressAndDone(t *testing.T) {
	m := NewModel(Config{SourceDir: "/passports", TargetDir: "/all_photos"})
	assert.Contains(t, m.View(), "Scanning photos...")

	m, _ = update(t, m, CopyProgressMsg{Current: 1, Total: 3, File: "a.JPG"})
	view := m.View()
	assert.Contains(t, view, "1/3 files")
	assert.Contains(t, view, "a.JPG")

	m, _ = update(t, m, CollectDoneMsg{Result: domain.CollectResult{
		Destination: "/all_photos",
		Items:       make([]domain.CopyItem, 3),
		Renamed:     1,
	}})
	assert.Equal(t, PhaseDone, m.Phase)
	view = m.View()
	assert.Contains(t, view, "All photos have been collected into: /all_photos")
	assert.Contains(t, view, "Renamed:")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelEnterIgnoredWhileCollecting(t *testing.T) {
	m := NewModel(Config{})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestModelError(t *testing.T) {
	m := NewModel(Config{})

	m, _ = update(t, m, ErrorMsg{Err: errors.New("disk full")})

	assert.Equal(t, PhaseError, m.Phase)
	assert.Contains(t, m.View(), "disk full")
}

func TestModelQuit(t *testing.T) {
	m := NewModel(Config{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	assert.True(t, m.Quitting)
	assert.Empty(t, m.View())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelDryRunSummary(t *testing.T) {
	m := NewModel(Config{DryRun: true})

	m, _ = update(t, m, CollectDoneMsg{Result: domain.CollectResult{Destination: "/dst", Items: make([]domain.CopyItem, 2)}})

	assert.Contains(t, m.View(), "2 photos would be collected into: /dst")
}

func TestRunReturnsCollectError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wantErr := errors.New("disk full")

	var progressed bool
	_, err := Run(ctx, Config{}, func(ctx context.Context, onProgress func(current, total int, name string)) (domain.CollectResult, error) {
		onProgress(1, 2, "a.JPG")
		progressed = true
		cancel()
		return domain.CollectResult{}, wantErr
	}, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer(), tea.WithoutSignalHandler())

	assert.ErrorIs(t, err, wantErr)
	assert.True(t, progressed)
}
