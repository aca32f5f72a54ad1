package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/parkerchace/MusicTheory-sub000/pkg/errors"
	"github.com/parkerchace/MusicTheory-sub000/pkg/filter"
	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/pipeline"
	"github.com/parkerchace/MusicTheory-sub000/pkg/radial"
	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

var (
	browseKeyStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	browseErrorStyle = lipgloss.NewStyle().Foreground(colorRed)

	layoutModes = []radial.Mode{radial.ModeAuto, radial.ModeQuadrant}
)

// complexityStep is how far + and - move the complexity setting.
const complexityStep = 10

// browseCommand creates the interactive candidate browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		ctxf  contextFlags
		menuf menuFlags
	)

	cmd := &cobra.Command{
		Use:   "browse <chord>",
		Short: "Browse the substitution menu interactively",
		Long: `Browse the visible substitutions for a chord. Keys:

  f  cycle intent filter      r  cycle ranking mode
  e  toggle exhaustive        l  cycle layout mode
  +  raise complexity         -  lower complexity
  ↑/↓ move                    q  quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Chord = args[0]
			ctxf.apply(cmd.Flags(), &opts)
			menuf.apply(cmd.Flags(), &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), ctxf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			// Pipeline logging would tear the alternate screen.
			c.Logger.SetLevel(LogFatal)

			model := NewBrowseModel(cmd.Context(), runner, opts)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	ctxf.register(cmd.Flags())
	menuf.register(cmd.Flags())

	return cmd
}

// =============================================================================
// BrowseModel - Interactive candidate browser
// =============================================================================

// menuSource computes menus for the browser. *pipeline.Runner satisfies it.
type menuSource interface {
	Substitutions(ctx context.Context, opts pipeline.Options) ([]substitution.Candidate, error)
	Menu(ctx context.Context, opts pipeline.Options) (menu.Menu, error)
}

// BrowseModel is the bubbletea model for browsing a menu. Every setting
// change recomputes the menu synchronously and replaces the previous one.
type BrowseModel struct {
	ctx    context.Context
	source menuSource
	opts   pipeline.Options

	Menu       menu.Menu
	Candidates []substitution.Candidate // visible candidates, best first
	Err        error

	Cursor int
	Offset int
	Height int
}

// NewBrowseModel creates a browser and computes the first menu. opts must
// already be validated.
func NewBrowseModel(ctx context.Context, source menuSource, opts pipeline.Options) BrowseModel {
	m := BrowseModel{ctx: ctx, source: source, opts: opts, Height: 12}
	m.recompute()
	return m
}

// Options returns the settings the current menu was built with.
func (m BrowseModel) Options() pipeline.Options { return m.opts }

func (m *BrowseModel) recompute() {
	menuOpts := m.opts
	mn, err := m.source.Menu(m.ctx, menuOpts)
	if err != nil {
		m.Err = err
		return
	}
	graded, err := m.source.Substitutions(m.ctx, menuOpts)
	if err != nil {
		m.Err = err
		return
	}
	m.Err = nil
	m.Menu = mn
	m.Candidates = visibleCandidates(mn, graded)
	m.Cursor = min(m.Cursor, max(len(m.Candidates)-1, 0))
	m.Offset = min(m.Offset, m.Cursor)
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "f":
			m.opts.Filter = string(next(filter.Modes(), filter.Mode(m.opts.Filter)))
			m.recompute()
		case "r":
			m.opts.Ranking = string(next(rank.Modes(), rank.Mode(m.opts.Ranking)))
			m.recompute()
		case "l":
			m.opts.Layout = string(next(layoutModes, radial.Mode(m.opts.Layout)))
			m.recompute()
		case "e":
			m.opts.Exhaustive = !m.opts.Exhaustive
			m.recompute()
		case "+", "=":
			if c := min(m.opts.Complexity+complexityStep, 100); c != m.opts.Complexity {
				m.opts.Complexity = c
				m.recompute()
			}
		case "-":
			if c := max(m.opts.Complexity-complexityStep, 1); c != m.opts.Complexity {
				m.opts.Complexity = c
				m.recompute()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.opts.String()))
	b.WriteString("\n")
	b.WriteString(m.settingsLine())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  f filter  r ranking  e exhaustive  l layout  +/- complexity  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(browseErrorStyle.Render(iconError + " " + errors.UserMessage(m.Err)))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.Candidates) == 0 {
		b.WriteString(StyleWarning.Render("No substitutions match this filter"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(candidateTable(m.Candidates, m.Cursor, m.Offset, m.Height))
	b.WriteString("\n")
	b.WriteString(statsLine(m.Menu.Stats, false))
	b.WriteString("\n\n")
	b.WriteString(m.detail(m.Candidates[m.Cursor]))
	return b.String()
}

func (m BrowseModel) settingsLine() string {
	exhaustive := "off"
	if m.opts.Exhaustive {
		exhaustive = "on"
	}
	pairs := [][2]string{
		{"filter", m.opts.Filter},
		{"ranking", m.opts.Ranking},
		{"layout", m.opts.Layout},
		{"exhaustive", exhaustive},
		{"complexity", fmt.Sprint(m.opts.Complexity)},
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = StyleDim.Render(p[0]+" ") + browseKeyStyle.Render(p[1])
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func (m BrowseModel) detail(c substitution.Candidate) string {
	lines := []string{
		StyleValue.Render(c.FullName) + StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Candidates))),
		StyleDim.Render("notes  ") + strings.Join(c.Notes, " "),
	}
	if c.VoiceLeading != "" {
		lines = append(lines, StyleDim.Render("voice  ")+c.VoiceLeading)
	}
	if len(c.MIDI) > 0 {
		lines = append(lines, StyleDim.Render("midi   ")+strings.Trim(fmt.Sprint(c.MIDI), "[]"))
	}
	return strings.Join(lines, "\n")
}

// visibleCandidates returns the graded candidates shown in mn: plain nodes
// plus the members of cluster nodes. Overflow members are left out.
func visibleCandidates(mn menu.Menu, graded []substitution.Candidate) []substitution.Candidate {
	shown := make(map[string]bool)
	for _, n := range mn.Nodes {
		switch n.Kind {
		case radial.KindCandidate:
			shown[n.ID] = true
		case radial.KindCluster:
			for _, c := range n.Members {
				shown[c.ID] = true
			}
		}
	}
	out := make([]substitution.Candidate, 0, len(shown))
	for _, c := range graded {
		if shown[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// next returns the mode after cur, wrapping around. An unknown cur gives the
// first mode.
func next[M comparable](modes []M, cur M) M {
	i := slices.Index(modes, cur)
	return modes[(i+1)%len(modes)]
}
