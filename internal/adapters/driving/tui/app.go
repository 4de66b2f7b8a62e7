package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/motionsplit/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/motionsplit/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/motionsplit/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

const (
	// recentLimit is the number of processed files listed under the bar.
	recentLimit = 8

	// maxBarWidth caps the progress bar on wide terminals.
	maxBarWidth = 60

	// eventBuffer is the number of progress events queued ahead of the UI.
	eventBuffer = 64
)

// App is the batch extraction progress view following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is cancelled when the user stops the batch.
	ctx    context.Context
	cancel context.CancelFunc

	// root and settings describe the batch.
	root     string
	settings domain.ExtractSettings

	styles  *styles.Styles
	keys    *keymap.KeyMap
	spinner spinner.Model
	bar     progress.Model

	// events carries progress from the extraction goroutine.
	events chan tea.Msg

	done      int
	total     int
	extracted int
	skipped   int
	failed    int
	recent    []domain.ExtractionRecord

	showDetails bool
	finished    bool
	summary     *domain.BatchSummary
	err         error
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a progress view that extracts every candidate under root.
func NewApp(ports *Ports, root string, settings domain.ExtractSettings) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	theme := s.Theme()

	bar := progress.New(progress.WithGradient(string(theme.Primary), string(theme.Secondary)))
	bar.Width = maxBarWidth

	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		ports:       ports,
		ctx:         ctx,
		cancel:      cancel,
		root:        root,
		settings:    settings,
		styles:      s,
		keys:        keymap.DefaultKeyMap(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Spinner)),
		bar:         bar,
		events:      make(chan tea.Msg, eventBuffer),
		showDetails: true,
	}, nil
}

// WithContext derives the batch context from ctx.
func (a *App) WithContext(ctx context.Context) *App {
	a.cancel()
	a.ctx, a.cancel = context.WithCancel(ctx)
	return a
}

// Init implements tea.Model.
// It starts the batch and the spinner.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("motionsplit - "+filepath.Base(a.root)),
		a.spinner.Tick,
		a.run,
		a.wait,
	)
}

// run extracts the batch. Progress is queued on the events channel and
// the summary is returned as the command's message.
func (a *App) run() tea.Msg {
	defer close(a.events)

	summary, err := a.ports.Extraction.ExtractAll(a.ctx, a.root, a.settings,
		func(rec domain.ExtractionRecord, done, total int) {
			select {
			case a.events <- messages.RecordProcessed{Record: rec, Done: done, Total: total}:
			case <-a.ctx.Done():
			}
		})

	return messages.ExtractionCompleted{Summary: summary, Err: err}
}

// wait blocks for the next progress event. It returns nil once the batch ends.
func (a *App) wait() tea.Msg {
	msg, ok := <-a.events
	if !ok {
		return nil
	}
	return msg
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.bar.Width = max(min(msg.Width-4, maxBarWidth), 10)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.cancel()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Details):
			a.showDetails = !a.showDetails
		}
		return a, nil

	case messages.RecordProcessed:
		a.record(msg)
		return a, tea.Batch(a.bar.SetPercent(msg.Fraction()), a.wait)

	case messages.ExtractionCompleted:
		a.finished = true
		a.summary = msg.Summary
		a.err = msg.Err
		a.cancel()
		return a, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case progress.FrameMsg:
		model, cmd := a.bar.Update(msg)
		if bar, ok := model.(progress.Model); ok {
			a.bar = bar
		}
		return a, cmd
	}

	return a, nil
}

// record folds one progress event into the counters.
func (a *App) record(msg messages.RecordProcessed) {
	a.done = msg.Done
	a.total = msg.Total

	switch {
	case msg.Record.Error != "":
		a.failed++
	case msg.Record.Outcome == domain.OutcomeSuccess:
		a.extracted++
	default:
		a.skipped++
	}

	a.recent = append(a.recent, msg.Record)
	if len(a.recent) > recentLimit {
		a.recent = a.recent[len(a.recent)-recentLimit:]
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("motionsplit"))
	b.WriteString("\n\n")

	status := "Extracting"
	if a.finished {
		status = "Finished"
	}
	fmt.Fprintf(&b, "%s %s %s\n\n", a.spinner.View(), status, a.styles.Muted.Render(a.root))

	b.WriteString(a.bar.View())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s  %s\n",
		a.styles.Muted.Render(fmt.Sprintf("%d / %d files", a.done, a.total)),
		a.styles.Success.Render(fmt.Sprintf("%d extracted", a.extracted)),
		a.styles.Warning.Render(fmt.Sprintf("%d skipped", a.skipped)),
		a.styles.Error.Render(fmt.Sprintf("%d failed", a.failed)),
	)

	if a.showDetails && len(a.recent) > 0 {
		b.WriteString("\n")
		for _, rec := range a.recent {
			b.WriteString(a.renderRecord(rec))
			b.WriteString("\n")
		}
	}

	b.WriteString(a.styles.Help.Render(a.keys.HelpLine()))
	b.WriteString("\n")

	return b.String()
}

func (a *App) renderRecord(rec domain.ExtractionRecord) string {
	name := filepath.Base(rec.SourcePath)
	switch {
	case rec.Error != "":
		return a.styles.Error.Render("✗ "+name) + " " + a.styles.Muted.Render(rec.Error)
	case rec.Outcome == domain.OutcomeSuccess && rec.Unchanged:
		return a.styles.Success.Render("= "+name) + " " + a.styles.Muted.Render("unchanged")
	case rec.Outcome == domain.OutcomeSuccess:
		return a.styles.Success.Render("✓ "+name) + " " +
			a.styles.Muted.Render(humanize.Bytes(uint64(max(rec.VideoSize, 0))))
	default:
		return a.styles.Warning.Render("- "+name) + " " + a.styles.Muted.Render(rec.Outcome.Description())
	}
}

// Summary returns the batch result once the extraction has finished.
func (a *App) Summary() *domain.BatchSummary {
	return a.summary
}

// Err returns the batch error, if any.
func (a *App) Err() error {
	return a.err
}

// Finished reports whether the batch ran to completion or failed.
func (a *App) Finished() bool {
	return a.finished
}

// Progress returns the number of completed candidates and the batch size.
func (a *App) Progress() (done, total int) {
	return a.done, a.total
}
