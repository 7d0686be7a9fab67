package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ng-youn/runsheet/internal/adapters/driven/storage/sqlite"
	"github.com/ng-youn/runsheet/internal/core/domain"
)

var flagStatusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent sync cycle history",
	Long: `Prints the most recent sync cycles recorded in the local history
database: when each cycle ran, whether it succeeded, and how many rows
it appended. Output is styled when stdout is a terminal.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&flagStatusLimit, "limit", 10, "number of cycles to show")
	rootCmd.AddCommand(statusCmd)
}

var (
	statusOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runStatus(cmd *cobra.Command, _ []string) error {
	store, err := sqlite.NewStore(flagDataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	cycles, err := store.CycleStore().RecentCycles(cmd.Context(), flagStatusLimit)
	if err != nil {
		return err
	}
	if len(cycles) == 0 {
		cmd.Println("No sync cycles recorded yet.")
		return nil
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	for _, cycle := range cycles {
		cmd.Println(formatCycle(cycle, styled))
	}
	return nil
}

// formatCycle renders one history line. Styling is dropped when the
// output is not a terminal so piped output stays plain.
func formatCycle(cycle domain.CycleResult, styled bool) string {
	state := "ok"
	if !cycle.Success {
		state = "failed"
	}

	duration := cycle.EndedAt.Sub(cycle.StartedAt).Round(time.Millisecond)
	detail := fmt.Sprintf("%d rows appended", cycle.RowsAppended)
	if cycle.RunsSkipped > 0 {
		detail += fmt.Sprintf(", %d runs skipped", cycle.RunsSkipped)
	}
	if cycle.Error != "" {
		detail = cycle.Error
	}

	var b strings.Builder
	b.WriteString(cycle.StartedAt.Local().Format("2006-01-02 15:04:05"))
	b.WriteString("  ")
	if styled {
		if cycle.Success {
			b.WriteString(statusOKStyle.Render(fmt.Sprintf("%-6s", state)))
		} else {
			b.WriteString(statusFailStyle.Render(fmt.Sprintf("%-6s", state)))
		}
		b.WriteString("  ")
		b.WriteString(detail)
		b.WriteString("  ")
		b.WriteString(statusDimStyle.Render("(" + duration.String() + ")"))
	} else {
		b.WriteString(fmt.Sprintf("%-6s  %s  (%s)", state, detail, duration))
	}
	return b.String()
}
