package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"imgkit/internal/domain"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseCollecting Phase = iota
	PhaseDone
	PhaseError
)

type (
	CopyProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	CollectDoneMsg struct {
		Result domain.CollectResult
	}
	ErrorMsg struct {
		Err error
	}
)

// CollectFunc runs the collection, reporting each placed file to onProgress.
type CollectFunc func(ctx context.Context, onProgress func(current, total int, name string)) (domain.CollectResult, error)

type Config struct {
	SourceDir string
	TargetDir string
	DryRun    bool
}

type Model struct {
	config      Config
	Phase       Phase
	Result      domain.CollectResult
	Err         error
	Quitting    bool
	spinner     spinner.Model
	progress    progress.Model
	current     int
	total       int
	currentFile string
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseCollecting,
		spinner:  s,
		progress: p,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = max(10, min(msg.Width-20, 60))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Phase != PhaseCollecting {
				return m, tea.Quit
			}
		}

	case CopyProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		m.currentFile = msg.File
		return m, nil

	case CollectDoneMsg:
		m.Phase = PhaseDone
		m.Result = msg.Result
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseCollecting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseCollecting:
		b.WriteString(m.renderProgress())
	case PhaseDone:
		b.WriteString(m.renderDone())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("📷 imgkit collect")
	subtitle := subtitleStyle.Render("Gather scattered photos into one folder")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.TargetDir))),
	)
}

func (m Model) renderProgress() string {
	if m.total == 0 {
		return fmt.Sprintf("%s Scanning photos...", m.spinner.View())
	}

	percent := float64(m.current) / float64(m.total)
	var b strings.Builder
	verb := "Copying"
	if m.config.DryRun {
		verb = "Planning"
	}
	b.WriteString(fmt.Sprintf("%s %s...\n\n", m.spinner.View(), verb))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d files", m.current, m.total)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))
	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.currentFile)))
	}
	return b.String()
}

func (m Model) renderDone() string {
	var b strings.Builder

	heading := "Copy Complete"
	message := fmt.Sprintf("All photos have been collected into: %s", m.Result.Destination)
	if m.config.DryRun {
		heading = "Dry Run"
		message = fmt.Sprintf("%d photos would be collected into: %s", m.Result.Count(), m.Result.Destination)
	}
	b.WriteString(sectionStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n\n", successStyle.Render(iconSuccess), successStyle.Render(message)))

	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Photos:"), statValueStyle.Render(fmt.Sprintf("%d", m.Result.Count()))))
	if m.Result.Renamed > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Renamed:"), warningStyle.Render(fmt.Sprintf("%s %d", iconRenamed, m.Result.Renamed))))
	}
	return b.String()
}

func (m Model) renderError() string {
	msg := "unknown error"
	if m.Err != nil {
		msg = m.Err.Error()
	}
	return errorBoxStyle.Render(fmt.Sprintf("%s %s", errorStyle.Render(iconError), errorStyle.Render("Error: "+msg)))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseCollecting:
		help = "Press q to stop"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// Run shows the progress view while collect runs in the background. It
// returns once the user leaves the view and collect has returned.
func Run(ctx context.Context, cfg Config, collect CollectFunc, opts ...tea.ProgramOption) (domain.CollectResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(NewModel(cfg), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	type outcome struct {
		result domain.CollectResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := collect(ctx, func(current, total int, name string) {
			program.Send(CopyProgressMsg{Current: current, Total: total, File: name})
		})
		if err != nil {
			program.Send(ErrorMsg{Err: err})
		} else {
			program.Send(CollectDoneMsg{Result: result})
		}
		done <- outcome{result: result, err: err}
	}()

	_, runErr := program.Run()
	cancel()
	out := <-done
	if out.err != nil {
		return out.result, out.err
	}
	if runErr != nil {
		return out.result, runErr
	}
	return out.result, nil
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
