package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codescope/internal/analyzer"
	"codescope/internal/watcher"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type uiModel struct {
	list       list.Model
	result     *analyzer.Result
	lastUpdate time.Time
}

type resultMsg struct {
	result *analyzer.Result
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case resultMsg:
		m.result = msg.result
		m.lastUpdate = time.Now()
		m.list.SetItems(resultItems(msg.result))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m uiModel) View() string {
	s := m.result.Summary
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d units | %d entities",
		m.lastUpdate.Format("15:04:05"), s.Units, s.Entities))

	var summary string
	if s.Cycles == 0 && len(m.result.Quality.Secrets) == 0 {
		summary = successStyle.Render(fmt.Sprintf("Clean | score %.1f (%s)", s.OverallScore, s.Grade))
	} else {
		summary = fmt.Sprintf("%s | %s | score %.1f (%s)",
			cycleStyle.Render(fmt.Sprintf("%d cycles", s.Cycles)),
			warnStyle.Render(fmt.Sprintf("%d secrets", len(m.result.Quality.Secrets))),
			s.OverallScore, s.Grade)
	}

	header := titleStyle("codescope") + "\n" + summary + "\n" + status + "\n"
	return header + docStyle.Render(m.list.View())
}

func resultItems(res *analyzer.Result) []list.Item {
	items := []list.Item{}
	for _, c := range res.Graph.Cycles {
		items = append(items, item{
			title: "Circular Dependency",
			desc:  strings.Join(c, " -> ") + " -> " + c[0],
		})
	}
	for _, p := range res.Architecture.Patterns {
		items = append(items, item{
			title: fmt.Sprintf("Pattern: %s (%.0f%%)", p.Name, p.Confidence*100),
			desc:  strings.Join(p.Evidence, "; "),
		})
	}
	for _, sec := range res.Quality.Secrets {
		items = append(items, item{
			title: "Possible Secret: " + sec.Kind,
			desc:  fmt.Sprintf("%s:%d %s", sec.Path, sec.Line, sec.Masked),
		})
	}
	for _, r := range res.Quality.Recommendations {
		items = append(items, item{title: "Recommendation", desc: r})
	}
	for _, d := range res.Diagnostics {
		items = append(items, item{
			title: "Diagnostic: " + string(d.Stage),
			desc:  d.Unit + ": " + d.Message,
		})
	}
	return items
}

// RunUI shows the interactive results browser. With watch enabled, it
// re-analyzes on change and pushes fresh results into the running
// program.
func (a *App) RunUI(ctx context.Context, initial *analyzer.Result, watchEnabled bool) error {
	delegate := list.NewDefaultDelegate()
	l := list.New(resultItems(initial), delegate, 0, 0)
	l.Title = "Findings"

	m := uiModel{list: l, result: initial, lastUpdate: time.Now()}
	p := tea.NewProgram(m, tea.WithAltScreen())

	if watchEnabled {
		w, err := watcher.New(a.Config.Watch.Debounce, a.Config.Exclude.Dirs, a.Config.Exclude.Files, func(paths []string) {
			res, err := a.RunOnce(ctx)
			if err != nil {
				slog.Error("re-analysis failed", "error", err)
				return
			}
			p.Send(resultMsg{result: res})
		})
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Watch(a.Config.Paths); err != nil {
			return err
		}
	}

	_, err := p.Run()
	return err
}
