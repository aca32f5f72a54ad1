package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/rank"
	"github.com/parkerchace/MusicTheory-sub000/pkg/substitution"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// familyColors mirror the node fills used by the renderer.
var familyColors = map[substitution.Family]lipgloss.Color{
	substitution.FamilyDominant:  lipgloss.Color("#e4572e"),
	substitution.FamilySecondary: lipgloss.Color("#f3a712"),
	substitution.FamilyTonic:     lipgloss.Color("#4c6ef5"),
	substitution.FamilyModal:     lipgloss.Color("#a8c686"),
	substitution.FamilyExtension: lipgloss.Color("#669bbc"),
	substitution.FamilyMediant:   lipgloss.Color("#b388eb"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints menu statistics on a single line.
func printStats(s menu.Stats, cached bool) {
	fmt.Println(statsLine(s, cached))
}

func statsLine(s menu.Stats, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d candidates", s.Candidates),
		fmt.Sprintf("%d shown", s.Visible),
	}
	if s.Hidden > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", s.Hidden))
	}
	if s.Clusters > 0 {
		parts = append(parts, fmt.Sprintf("%d clusters", s.Clusters))
	}
	parts = append(parts, fmt.Sprintf("%d iterations", s.Iterations))

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	b.WriteString(StyleDim.Render(" · "))
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

// =============================================================================
// Candidate Table
// =============================================================================

// candidateRow is one table row.
func candidateRow(c substitution.Candidate) []string {
	return []string{
		c.Label,
		c.FullName,
		strings.ReplaceAll(string(c.Type), "_", " "),
		string(c.Family),
		strings.TrimPrefix(rank.TierLabel(c.Tier), "tier "),
		string(c.Grade),
		strconv.FormatFloat(c.HarmonicDistance, 'f', 2, 64),
		c.VoiceLeading,
	}
}

var candidateHeaders = []string{"Chord", "Name", "Type", "Family", "Tier", "Grade", "Distance", "Voice leading"}

// candidateTable renders cands[offset:offset+height] as a bordered table.
// cursor indexes into cands; a negative cursor highlights nothing.
func candidateTable(cands []substitution.Candidate, cursor, offset, height int) string {
	end := len(cands)
	if height > 0 {
		end = min(offset+height, len(cands))
	}
	rows := make([][]string, 0, max(end-offset, 0))
	for i := offset; i < end; i++ {
		rows = append(rows, candidateRow(cands[i]))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(candidateHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := offset + row
			if idx >= len(cands) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				if fg, ok := familyColors[cands[idx].Family]; ok {
					base = base.Foreground(fg)
				}
			} else if col >= 6 {
				base = base.Foreground(colorGray)
			}
			if idx == cursor {
				base = base.Bold(true).Background(lipgloss.Color("236"))
			}
			return base
		})
	return t.Render()
}
