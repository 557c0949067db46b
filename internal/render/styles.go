package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AreteDriver/agent-audit/internal/model"
)

var (
	boldStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func severityStyle(sev model.Severity) lipgloss.Style {
	switch sev {
	case model.SeverityError:
		return errStyle
	case model.SeverityWarning:
		return warnStyle
	default:
		return dimStyle
	}
}

func severityIcon(sev model.Severity) string {
	switch sev {
	case model.SeverityError:
		return "x"
	case model.SeverityWarning:
		return "!"
	default:
		return "i"
	}
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return greenStyle
	case score >= 50:
		return warnStyle
	default:
		return errStyle
	}
}
