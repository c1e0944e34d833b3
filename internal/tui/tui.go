// Package tui provides a Bubble Tea terminal user interface for tagrestore.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mikann/tagrestore/internal/config"
	"github.com/mikann/tagrestore/internal/model"
	"github.com/mikann/tagrestore/internal/musicbrainz"
	"github.com/mikann/tagrestore/internal/pipeline"
	"github.com/mikann/tagrestore/internal/prompt"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateChoosing
	StateManualInput
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// promptRequest carries one disambiguation question from the pipeline
// goroutine to the UI, with a channel for the answer.
type promptRequest struct {
	group      *model.AlbumGroup
	candidates []model.Candidate
	reply      chan prompt.Choice
}

// channelPrompter satisfies pipeline.Prompter by parking the pipeline
// goroutine until the UI answers.
type channelPrompter struct {
	events chan tea.Msg
}

func (p *channelPrompter) Disambiguate(group *model.AlbumGroup, candidates []model.Candidate) (prompt.Choice, error) {
	req := &promptRequest{
		group:      group,
		candidates: candidates,
		reply:      make(chan prompt.Choice, 1),
	}
	p.events <- PromptMsg{Request: req}
	return <-req.reply, nil
}

// Message types
type (
	// ProgressMsg is sent for each pipeline progress update.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// PromptMsg asks the UI to disambiguate an album.
	PromptMsg struct {
		Request *promptRequest
	}

	// RunDoneMsg is sent when the whole run finishes.
	RunDoneMsg struct {
		Summary *pipeline.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	summary   *pipeline.Summary
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Pipeline plumbing
	runner *pipeline.Runner
	events chan tea.Msg

	// Albums processed
	groupsDone  int32
	groupsTotal int32

	// Pending disambiguation
	request *promptRequest
	cursor  int

	// Options
	verbose bool
	dryRun  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	settings := config.DefaultSettings()

	ti := textinput.New()
	ti.Placeholder = settings.InputPath
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan tea.Msg, 64),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level == pipeline.LevelVerbose && !m.verbose {
			return m, m.listen()
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}
		return m, m.listen()

	case PromptMsg:
		m.state = StateChoosing
		m.request = msg.Request
		m.cursor = 0
		return m, nil

	case RunDoneMsg:
		m.summary = msg.Summary
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}
		return m, nil

	case TickMsg:
		if m.runner != nil && (m.state == StateRunning || m.state == StateChoosing) {
			done, total := m.runner.Progress()
			m.groupsDone = done
			m.groupsTotal = total

			var percent float64
			if total > 0 {
				percent = float64(done) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput || m.state == StateManualInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		m.answer(prompt.Choice{Kind: prompt.ChoiceAbort})
		return m, tea.Quit

	case "esc":
		switch m.state {
		case StateInput:
			return m, tea.Quit
		case StateChoosing:
			// Skip this album, keep the run going.
			m.answer(prompt.Choice{Kind: prompt.ChoiceAbort})
			m.state = StateRunning
			return m, m.listen()
		case StateManualInput:
			m.answer(prompt.Choice{Kind: prompt.ChoiceAbort})
			m.state = StateRunning
			return m, m.listen()
		case StateRunning:
			m.cancel()
			m.answer(prompt.Choice{Kind: prompt.ChoiceAbort})
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		}

	case "enter":
		switch m.state {
		case StateInput:
			root := strings.TrimSpace(m.textInput.Value())
			if root == "" {
				root = m.settings.InputPath
			}
			m.settings.InputPath = root
			m.state = StateRunning
			return m, tea.Batch(m.startRun(), m.listen(), m.tickProgress(), m.spinner.Tick)

		case StateChoosing:
			return m.choose()

		case StateManualInput:
			input := strings.TrimSpace(m.textInput.Value())
			switch {
			case input == "":
				m.answer(prompt.Choice{Kind: prompt.ChoiceAbort})
			case musicbrainz.IsReleaseID(input):
				m.answer(prompt.Choice{Kind: prompt.ChoiceRelease, ReleaseID: strings.ToLower(input)})
			default:
				m.answer(prompt.Choice{Kind: prompt.ChoiceSearch, Query: input})
			}
			m.state = StateRunning
			return m, m.listen()
		}

	case "up", "k":
		if m.state == StateChoosing && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.state == StateChoosing && m.cursor < len(m.request.candidates)+1 {
			m.cursor++
		}

	case "c":
		if m.state == StateInput {
			m.settings.EmbedCoverArt = !m.settings.EmbedCoverArt
		}

	case "n":
		if m.state == StateInput {
			m.settings.RenameFiles = !m.settings.RenameFiles
		}

	case "d":
		if m.state == StateInput {
			m.dryRun = !m.dryRun
		}

	case "v":
		if m.state == StateInput {
			m.verbose = !m.verbose
		}

	case "q":
		if m.state == StateComplete || m.state == StateError {
			return m, tea.Quit
		}

	case "r":
		if m.state == StateComplete || m.state == StateError {
			// Reset for a new run
			m.state = StateInput
			m.logs = nil
			m.summary = nil
			m.err = nil
			m.runner = nil
			m.request = nil
			m.groupsDone = 0
			m.groupsTotal = 0
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.textInput.SetValue("")
			m.textInput.Focus()
		}
	}

	if m.state == StateInput || m.state == StateManualInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// choose handles Enter on the candidate list.
func (m Model) choose() (tea.Model, tea.Cmd) {
	switch {
	case m.cursor < len(m.request.candidates):
		m.answer(prompt.Choice{Kind: prompt.ChoiceRelease, ReleaseID: m.request.candidates[m.cursor].ID})
		m.state = StateRunning
		return m, m.listen()

	case m.cursor == len(m.request.candidates):
		// Manual entry row
		m.state = StateManualInput
		m.textInput.SetValue("")
		m.textInput.Placeholder = "Album name or release ID"
		m.textInput.Focus()
		return m, textinput.Blink

	default:
		m.answer(prompt.Choice{Kind: prompt.ChoiceAbort})
		m.state = StateRunning
		return m, m.listen()
	}
}

// answer replies to the pending prompt request, if any.
func (m *Model) answer(choice prompt.Choice) {
	if m.request != nil {
		m.request.reply <- choice
		m.request = nil
	}
}

// listen waits for the next event from the pipeline goroutine.
func (m Model) listen() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// startRun launches the pipeline in the background. Progress events and
// prompt requests flow back through the events channel.
func (m *Model) startRun() tea.Cmd {
	events := m.events
	runner := pipeline.NewRunner(m.settings, &channelPrompter{events: events}, func(event pipeline.ProgressEvent) {
		events <- ProgressMsg{Event: event}
	})
	runner.DryRun = m.dryRun
	m.runner = runner

	ctx := m.ctx
	root := m.settings.InputPath
	return func() tea.Msg {
		go func() {
			summary, err := runner.Run(ctx, root)
			events <- RunDoneMsg{Summary: summary, Err: err}
		}()
		return nil
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 Tag Restore"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Restore original-language metadata from MusicBrainz"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateChoosing:
		b.WriteString(m.viewChoosing())
	case StateManualInput:
		b.WriteString(m.viewManualInput())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter music folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	coverCheck := "[ ]"
	if m.settings.EmbedCoverArt {
		coverCheck = "[×]"
	}
	renameCheck := "[ ]"
	if m.settings.RenameFiles {
		renameCheck = "[×]"
	}
	dryRunCheck := "[ ]"
	if m.dryRun {
		dryRunCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Rename files from canonical titles (n)\n", renameCheck))
	b.WriteString(fmt.Sprintf("  %s Embed cover art (c)\n", coverCheck))
	b.WriteString(fmt.Sprintf("  %s Dry run (d)\n", dryRunCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Restoring metadata..."))
	b.WriteString("\n\n")

	if m.groupsTotal > 0 {
		b.WriteString(m.progress.ViewAs(float64(m.groupsDone) / float64(m.groupsTotal)))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Albums: %d/%d", m.groupsDone, m.groupsTotal)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewChoosing() string {
	var b strings.Builder

	req := m.request
	b.WriteString(warningStyle.Render(fmt.Sprintf("%d matches for %q (%d local files)",
		len(req.candidates), req.group.Name, req.group.TotalTracks())))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(req.candidates)+2)
	for _, c := range req.candidates {
		rows = append(rows, prompt.CandidateLabel(c))
	}
	rows = append(rows, "Enter an album name or release ID", "Skip this album")

	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString(albumStyle.Render("  " + row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewManualInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Album name or MusicBrainz release ID for %q:", m.promptAlbum())))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) promptAlbum() string {
	if m.request != nil {
		return m.request.group.Name
	}
	return ""
}

func (m Model) viewComplete() string {
	var b strings.Builder

	summary := m.summary
	if summary == nil {
		summary = &pipeline.Summary{}
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Restoration Complete!\n\n"+
			"Albums restored: %d\n"+
			"Files written: %d\n"+
			"Files failed: %d\n"+
			"Albums skipped: %d",
		summary.AlbumsRestored,
		summary.FilesWritten,
		len(summary.FailedFiles),
		len(summary.FailedGroups),
	))
	b.WriteString(box)

	if len(summary.FailedGroups) > 0 {
		b.WriteString("\n\n")
		b.WriteString(warningStyle.Render("Skipped albums:"))
		b.WriteString("\n")
		for _, failure := range summary.FailedGroups {
			b.WriteString(fmt.Sprintf("  %s: %v\n", failure.Album, failure.Err))
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • n: rename • c: cover art • d: dry run • v: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateChoosing:
		return "↑/↓: navigate • enter: select • esc: skip album"
	case StateManualInput:
		return "enter: confirm • esc: skip album"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
