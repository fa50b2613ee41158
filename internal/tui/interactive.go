// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapidcopper/rapidcopper/internal/catalog"
	"github.com/rapidcopper/rapidcopper/internal/pipeline"
	"github.com/rapidcopper/rapidcopper/internal/resolve"
)

const (
	stateEditing viewState = iota
	stateRunning

	// listHeight is the number of candidate rows; Resolve never returns more.
	listHeight = resolve.MaxCandidates
	// chromeHeight is the rows taken by the prompt, the result and the help line.
	chromeHeight = 5
)

var _ pipeline.FrontEnd = (*selectionFrontEnd)(nil)

type (
	// Session is what the interactive view drives. *launcher.Launcher
	// satisfies it.
	Session interface {
		Resolve(ctx context.Context, kinds catalog.KindSet, token string) ([]resolve.Candidate, error)
		Evaluate(ctx context.Context, fe pipeline.FrontEnd, raw string) pipeline.Outcome
	}

	// viewState is the current mode of the interactive view.
	viewState int

	// candidatesMsg delivers the candidates of the last stage of line.
	candidatesMsg struct {
		line       string
		token      string
		candidates []resolve.Candidate
		err        error
	}

	// outcomeMsg delivers the result of evaluating line.
	outcomeMsg struct {
		line    string
		outcome pipeline.Outcome
	}

	// candidateItem is a list row.
	candidateItem struct {
		resolve.Candidate
		token string
	}

	// candidateDelegate renders one candidate per row.
	candidateDelegate struct{}

	// interactiveModel is the Bubbletea model of the live command line.
	interactiveModel struct {
		ctx     context.Context
		session Session
		input   textinput.Model
		list    list.Model
		state   viewState
		width   int

		// resolved is the line the list currently shows candidates for.
		resolved string
		// resolveErr is the error of the last resolution, if any.
		resolveErr error
		// ran is the last evaluated line and outcome its result.
		ran     string
		outcome *pipeline.Outcome
	}

	// selectionFrontEnd answers interpreter prompts from the view: the stage
	// the list shows takes the highlighted candidate, other ambiguous stages
	// take the best ranked one, and an action typed without arguments runs
	// with none.
	selectionFrontEnd struct {
		stage    int
		selected *catalog.Entry
		shown    map[int][]resolve.Candidate
	}
)

// RunInteractive runs the live command line until the user presses Esc or
// ctx is canceled. Candidates for the stage being typed are resolved on every
// edit; a line is only evaluated on Enter.
func RunInteractive(ctx context.Context, session Session, cfg Config) error {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(getOutputWriter(cfg)),
	}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	m := newInteractiveModel(ctx, session, cfg)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}

func newInteractiveModel(ctx context.Context, session Session, cfg Config) *interactiveModel {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "greet world | upper"
	in.Focus()

	width := cfg.Width
	if width == 0 {
		width = 80
	}
	l := list.New(nil, candidateDelegate{}, width, listHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return &interactiveModel{
		ctx:     ctx,
		session: session,
		input:   in,
		list:    l,
		state:   stateEditing,
		width:   width,
	}
}

// Init implements tea.Model.
func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.evaluate()
		case tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width, min(listHeight, max(1, msg.Height-chromeHeight)))
		return m, nil
	case candidatesMsg:
		return m, m.applyCandidates(msg)
	case outcomeMsg:
		m.state = stateEditing
		m.ran = msg.line
		m.outcome = &msg.outcome
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.resolve(m.input.Value()))
	}
	return m, cmd
}

// View implements tea.Model.
func (m *interactiveModel) View() string {
	lines := []string{m.input.View()}

	switch {
	case m.resolveErr != nil:
		lines = append(lines, errorStyle.Render(m.resolveErr.Error()))
	case len(m.list.Items()) > 0:
		lines = append(lines, m.list.View())
	}

	switch {
	case m.state == stateRunning:
		lines = append(lines, helpStyle.Render("running..."))
	case m.outcome != nil:
		lines = append(lines, renderOutcome(m.ran, *m.outcome))
	}

	lines = append(lines, helpStyle.Render("enter run • ↑/↓ select • esc quit"))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(lines, "\n"))
}

// resolve returns a command that resolves the last stage of line.
func (m *interactiveModel) resolve(line string) tea.Cmd {
	stage, st, ok := lastStage(line)
	if !ok {
		return func() tea.Msg { return candidatesMsg{line: line} }
	}
	kinds := resolve.KindsFor(stage, len(st.Args))
	return func() tea.Msg {
		cs, err := m.session.Resolve(m.ctx, kinds, st.Token)
		return candidatesMsg{line: line, token: st.Token, candidates: cs, err: err}
	}
}

// applyCandidates replaces the list unless the message is for a line the
// user has already edited away from.
func (m *interactiveModel) applyCandidates(msg candidatesMsg) tea.Cmd {
	if msg.line != m.input.Value() {
		return nil
	}
	m.resolved = msg.line
	m.resolveErr = msg.err
	items := make([]list.Item, len(msg.candidates))
	for i, c := range msg.candidates {
		items[i] = candidateItem{Candidate: c, token: msg.token}
	}
	cmd := m.list.SetItems(items)
	m.list.Select(0)
	return cmd
}

// evaluate returns a command that evaluates the current line, or nil when
// there is nothing to run or a line is already running.
func (m *interactiveModel) evaluate() tea.Cmd {
	line := m.input.Value()
	if m.state == stateRunning || strings.TrimSpace(line) == "" {
		return nil
	}
	m.state = stateRunning

	fe := &selectionFrontEnd{shown: make(map[int][]resolve.Candidate)}
	if stage, _, ok := lastStage(line); ok && m.resolved == line {
		fe.stage = stage
		if it, ok := m.list.SelectedItem().(candidateItem); ok {
			e := it.Entry
			fe.selected = &e
		}
	}

	return func() tea.Msg {
		return outcomeMsg{line: line, outcome: m.session.Evaluate(m.ctx, fe, line)}
	}
}

// lastStage returns the index and contents of the stage being typed.
func lastStage(line string) (int, pipeline.Stage, bool) {
	stages := pipeline.Split(line)
	if len(stages) == 0 {
		return 0, pipeline.Stage{}, false
	}
	return len(stages) - 1, stages[len(stages)-1], true
}

func renderOutcome(line string, o pipeline.Outcome) string {
	switch o.Status {
	case pipeline.StatusProduced:
		return resultStyle.Render(fmt.Sprint(o.Value))
	case pipeline.StatusLaunched:
		return resultStyle.Render("launched " + strings.Fields(line)[0])
	default:
		return errorStyle.Render(o.Err.Error())
	}
}

// FilterValue implements list.Item.
func (i candidateItem) FilterValue() string { return i.Name }

// Height implements list.ItemDelegate.
func (candidateDelegate) Height() int { return 1 }

// Spacing implements list.ItemDelegate.
func (candidateDelegate) Spacing() int { return 0 }

// Update implements list.ItemDelegate.
func (candidateDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

// Render implements list.ItemDelegate.
func (candidateDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(candidateItem)
	if !ok {
		return
	}
	cursor := "  "
	if index == m.Index() {
		cursor = selectedStyle.Render("> ")
	}
	label := kindStyle.Render(fmt.Sprintf("%-7s", it.Kind.String()))
	line := fmt.Sprintf("%s%s %s", cursor, label, Highlight(it.token, it.Name))
	if it.Description != "" {
		line += " " + descriptionStyle.Render(it.Description)
	}
	_, _ = io.WriteString(w, line)
}

// PromptText implements pipeline.FrontEnd.
func (fe *selectionFrontEnd) PromptText(context.Context, int, string) (string, error) {
	return "", nil
}

// PromptChoice implements pipeline.FrontEnd.
func (fe *selectionFrontEnd) PromptChoice(_ context.Context, stage int, _ string) (int, error) {
	if stage != fe.stage || fe.selected == nil {
		return 0, nil
	}
	for i, c := range fe.shown[stage] {
		if c.Entry == *fe.selected {
			return i, nil
		}
	}
	return 0, nil
}

// ShowCandidates implements pipeline.FrontEnd.
func (fe *selectionFrontEnd) ShowCandidates(_ context.Context, stage int, cs []resolve.Candidate) error {
	fe.shown[stage] = cs
	return nil
}
