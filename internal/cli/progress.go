package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/valter-silva-au/onboard/internal/core"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// Per-stage display states.
const (
	stagePending = iota
	stageRunning
	stageDone
	stageFailed
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Style definitions.
var (
	progressTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	stagePendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	stageRunningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	stageDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	stageFailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	progressHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// stageMsg carries one pipeline stage event into the model.
type stageMsg core.StageEvent

// pipelineDoneMsg carries the finished run result.
type pipelineDoneMsg struct {
	result *models.PipelineRunResult
}

// tickMsg advances the spinner.
type tickMsg time.Time

type stageRow struct {
	step   string
	label  string
	state  int
	detail string
}

type progressModel struct {
	title  string
	rows   []stageRow
	frame  int
	result *models.PipelineRunResult
	quit   bool

	// run executes the pipeline; invoked once from Init so events only
	// start flowing after the program is receiving.
	run func() *models.PipelineRunResult

	// cancel aborts the pipeline when the user quits early.
	cancel context.CancelFunc
}

func newProgressModel(title string, run func() *models.PipelineRunResult, cancel context.CancelFunc) progressModel {
	return progressModel{
		title: title,
		rows: []stageRow{
			{step: models.StepRepoAnalysis, label: "Analyzing repository"},
			{step: models.StepDocsFetch, label: "Searching learning resources"},
			{step: models.StepTeamContext, label: "Gathering team context"},
			{step: models.StepGuideGeneration, label: "Generating guide"},
		},
		run:    run,
		cancel: cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	runCmd := func() tea.Msg {
		return pipelineDoneMsg{result: m.run()}
	}
	return tea.Batch(runCmd, tick())
}

func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quit = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}

	case tickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()

	case stageMsg:
		for i := range m.rows {
			if m.rows[i].step != msg.Step {
				continue
			}
			switch msg.Status {
			case core.StageStarted:
				m.rows[i].state = stageRunning
			case core.StageCompleted:
				m.rows[i].state = stageDone
				m.rows[i].detail = metricsSummary(msg.Metrics)
			case core.StageFailed:
				m.rows[i].state = stageFailed
				m.rows[i].detail = msg.Error
			}
		}
		return m, nil

	case pipelineDoneMsg:
		m.result = msg.result
		return m, tea.Quit
	}

	return m, nil
}

func (m progressModel) View() string {
	s := progressTitleStyle.Render(m.title) + "\n\n"

	for _, row := range m.rows {
		switch row.state {
		case stagePending:
			s += stagePendingStyle.Render("  ○ "+row.label) + "\n"
		case stageRunning:
			s += stageRunningStyle.Render("  "+spinnerFrames[m.frame]+" "+row.label) + "\n"
		case stageDone:
			line := "  ✓ " + row.label
			if row.detail != "" {
				line += "  (" + row.detail + ")"
			}
			s += stageDoneStyle.Render(line) + "\n"
		case stageFailed:
			s += stageFailedStyle.Render("  ✗ "+row.label+"  "+row.detail) + "\n"
		}
	}

	s += "\n" + progressHelpStyle.Render("q/esc: abort")
	return s
}

// metricsSummary renders the most interesting metric counts inline.
func metricsSummary(metrics map[string]int) string {
	if len(metrics) == 0 {
		return ""
	}
	for _, key := range []string{"files_listed", "resources", "members", "content_chars"} {
		if v, ok := metrics[key]; ok {
			return fmt.Sprintf("%d %s", v, key)
		}
	}
	return ""
}

// runWithProgress executes the pipeline under the interactive progress
// view. It returns the run result, or an error when the user aborted.
func runWithProgress(ctx context.Context, title string, build func(core.StageObserver) *core.Pipeline, params core.Params) (*models.PipelineRunResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var prog *tea.Program
	observer := func(ev core.StageEvent) {
		if prog != nil {
			prog.Send(stageMsg(ev))
		}
	}

	pipeline := build(observer)
	model := newProgressModel(title, func() *models.PipelineRunResult {
		return pipeline.Run(ctx, params)
	}, cancel)

	prog = tea.NewProgram(model)
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("running progress view: %w", err)
	}

	m, ok := final.(progressModel)
	if !ok || m.result == nil {
		return nil, fmt.Errorf("run aborted")
	}
	return m.result, nil
}
