package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Header1       lipgloss.Style
	Header2       lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style
	Error         lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

func newStyles(colored bool) *Styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header1: plain, Header2: plain, Bold: plain, Muted: plain,
			Success: plain, Warning: plain, Error: plain,
			StatusSuccess: plain.SetString("ok"),
			StatusFailed:  plain.SetString("x"),
		}
	}
	return &Styles{
		Header1:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:          lipgloss.NewStyle().Bold(true),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).SetString("ok"),
		StatusFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).SetString("x"),
	}
}

// Size thresholds for coloring compressed sizes. The factor scales them
// for aggregate figures (the archive total uses factor 10).
const (
	sizeWarnBytes  = 25_000
	sizeAlertBytes = 100_000
)

// FormatSize renders a human-readable byte count, colored by magnitude.
func (s *Styles) FormatSize(n uint64, factor uint64) string {
	text := humanize.Bytes(n)
	switch {
	case n > sizeAlertBytes*factor:
		return s.Error.Render(text)
	case n > sizeWarnBytes*factor:
		return s.Warning.Render(text)
	default:
		return s.Success.Render(text)
	}
}
