package crosscheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	validStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	suspectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Report outputs RSS cross-check results and sanity checks as a styled table.
func Report(w io.Writer, validation ValidationResult, sanity []SanityResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("RSS Cross-Check Report"))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("═", 60)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s %s\n",
		headerStyle.Render("SOURCE        "),
		headerStyle.Render("RSS (MB)   "),
		headerStyle.Render("STATUS  "))
	fmt.Fprintln(w, "  "+dimStyle.Render(strings.Repeat("─", 45)))

	for _, r := range validation.Readings {
		fmt.Fprintf(w, "  %-15s %-12.2f\n", r.Source, float64(r.RSS)/1024/1024)
	}

	var statusStr string
	switch validation.Status {
	case StatusConflict:
		statusStr = conflictStyle.Render("CONFLICT")
	case StatusSuspect:
		statusStr = suspectStyle.Render("SUSPECT")
	default:
		statusStr = validStyle.Render("VALID")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Consensus: %.2f MB  Max deviation: %.1f%%  %s\n",
		validation.Consensus/1024/1024, validation.MaxDeviation, statusStr)

	if len(sanity) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Sanity Checks"))
		failed := 0
		for _, s := range sanity {
			icon := validStyle.Render("PASS")
			if !s.Passed {
				icon = conflictStyle.Render("FAIL")
				failed++
			}
			fmt.Fprintf(w, "  [%s] %-35s %s\n", icon, s.Check, dimStyle.Render(s.Details))
		}
		fmt.Fprintln(w)
		if failed == 0 {
			fmt.Fprintf(w, "  %s\n", validStyle.Render(fmt.Sprintf("All %d sanity checks passed.", len(sanity))))
		} else {
			fmt.Fprintf(w, "  %s\n", conflictStyle.Render(fmt.Sprintf("%d of %d sanity checks failed.", failed, len(sanity))))
		}
	}
}
