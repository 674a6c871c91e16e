package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Browse and rearrange the estimate interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board needs an interactive terminal (try `tally view`)")
			}
			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			_, err = tea.NewProgram(newBoardModel(cmd.Context(), grid), tea.WithAltScreen()).Run()
			return err
		},
	}
}

type boardKeys struct {
	Up, Down         key.Binding
	MoveUp, MoveDown key.Binding
	Copy, Zero       key.Binding
	Expand, Quit     key.Binding
}

func defaultBoardKeys() boardKeys {
	return boardKeys{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		MoveUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Zero:     key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zero-cost")),
		Expand:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.MoveDown, k.MoveUp, k.Copy, k.Zero, k.Expand, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// pageLoadedMsg reports the end of a LoadMore call.
type pageLoadedMsg struct {
	grew bool
	err  error
}

// mutationDoneMsg reports the end of a grid mutation.
type mutationDoneMsg struct {
	status string
	cursor int
	err    error
}

// boardModel shows the displayed prefix of the estimate. The cursor indexes
// Displayed(), which is also the section's position in the store.
type boardModel struct {
	ctx     context.Context
	grid    service.GridService
	keys    boardKeys
	help    help.Model
	cursor  int
	zero    bool
	loading bool
	status  string
	err     error
}

func newBoardModel(ctx context.Context, grid service.GridService) *boardModel {
	return &boardModel{
		ctx:  ctx,
		grid: grid,
		keys: defaultBoardKeys(),
		help: help.New(),
	}
}

func (m *boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) loadMore() tea.Cmd {
	m.loading = true
	p := m.grid.Projector()
	return func() tea.Msg {
		grew, err := p.LoadMore(m.ctx)
		return pageLoadedMsg{grew: grew, err: err}
	}
}

func (m *boardModel) mutate(cursor int, op func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := op(m.ctx)
		return mutationDoneMsg{status: status, cursor: cursor, err: err}
	}
}

func (m *boardModel) clampCursor() {
	n := m.grid.Projector().DisplayedCount()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case pageLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.grew {
			m.cursor++
		}
		m.clampCursor()
		return m, nil

	case mutationDoneMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.status
			m.cursor = msg.cursor
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.grid.Projector()
	displayed := p.Displayed()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(displayed)-1 {
			m.cursor++
			return m, nil
		}
		if p.HasMore() && !m.loading {
			return m, m.loadMore()
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.MoveDown):
		from := m.cursor
		if from+1 >= len(displayed) {
			return m, nil
		}
		name := displayed[from].Name
		return m, m.mutate(from+1, func(ctx context.Context) (string, error) {
			return fmt.Sprintf("Moved %s down", name), m.grid.MoveSection(ctx, from, from+1)
		})

	case key.Matches(msg, m.keys.MoveUp):
		from := m.cursor
		if from == 0 || from >= len(displayed) {
			return m, nil
		}
		name := displayed[from].Name
		return m, m.mutate(from-1, func(ctx context.Context) (string, error) {
			return fmt.Sprintf("Moved %s up", name), m.grid.MoveSection(ctx, from, from-1)
		})

	case key.Matches(msg, m.keys.Copy):
		if m.cursor >= len(displayed) {
			return m, nil
		}
		source := displayed[m.cursor]
		return m, m.mutate(m.cursor, func(ctx context.Context) (string, error) {
			copied, err := m.grid.CopySection(ctx, source.ID)
			return fmt.Sprintf("Copied %s to %s", source.Name, copied.Name), err
		})

	case key.Matches(msg, m.keys.Zero):
		m.zero = !m.zero

	case key.Matches(msg, m.keys.Expand):
		if m.cursor < len(displayed) {
			p.ToggleExpanded(displayed[m.cursor].ID)
		}
	}
	return m, nil
}

func (m *boardModel) View() string {
	p := m.grid.Projector()
	displayed := p.Displayed()

	var b strings.Builder
	title := m.grid.Estimate().Name
	if m.zero {
		title += " · zero-cost items"
	}
	b.WriteString(formatter.Header(title) + "\n")

	if len(displayed) == 0 {
		b.WriteString(formatter.Dim("No sections. Add one with `tally section add`.") + "\n")
	}
	for i, s := range displayed {
		marker := "  "
		name := s.Name
		if i == m.cursor {
			marker = formatter.StyleYellowBold.Render("▶ ")
			name = formatter.StyleYellowBold.Render(name)
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", marker, name,
			formatter.Dim(fmt.Sprintf("(%d items)", len(s.Items))),
			formatter.StyleBlue.Render(formatter.Money(formatter.SectionTotal(s))))

		if !p.Expanded(s.ID) {
			continue
		}
		items := s.Items
		if m.zero {
			items, _ = p.ZeroItems(s.ID)
		}
		for _, it := range items {
			fmt.Fprintf(&b, "    %s %s  %s\n", formatter.Dim("·"), it.Subject,
				formatter.Dim(formatter.MoneyString(it.Total)))
		}
	}

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("loading…") + "\n")
	case p.HasMore():
		hidden := len(p.Grouped()) - len(displayed)
		b.WriteString(formatter.Dim(fmt.Sprintf("… %d more section(s), press j at the end to load", hidden)) + "\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(formatter.StyleGreen.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
