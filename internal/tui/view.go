package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/planward/planward/internal/stats"
	"github.com/planward/planward/internal/temporal"
)

func timeNow() time.Time { return time.Now() }

// View renders the day board
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.day.Format("Monday, Jan 2")))
	b.WriteString("\n")

	if running, ok := m.runningTask(); ok {
		clock := temporal.FormatClock(m.eng.ElapsedSeconds(running.ID))
		b.WriteString(timerStyle.Render(fmt.Sprintf("▶ %s  %s", running.Title, clock)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(dimStyle.Render("Nothing scheduled. Add a task with: planward add"))
		b.WriteString("\n")
	}

	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		icon := "[ ]"
		switch {
		case t.IsCompleted():
			icon = doneStyle.Render("[x]")
		case t.Timer.Running:
			icon = timerStyle.Render("[▶]")
		case t.CompletedMinutes > 0:
			icon = "[~]"
		}

		line := fmt.Sprintf("%s%s %s  %-32s %s %s",
			cursor, icon, t.ScheduledTime, clip(t.Title, 32),
			progressBar(t.CompletedMinutes, t.DurationMinutes),
			temporal.FormatDuration(t.DurationMinutes))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space timer · d done · u undo · ←/→ day · t today · q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	tasks := m.svc.Tasks()
	week := stats.CurrentWeek(tasks, timeNow())
	streak := stats.Streak(tasks, timeNow())

	status := fmt.Sprintf("week %.1fh/%.1fh (%.1f%%) · streak %d", week.TotalHoursCompleted,
		week.TotalHoursPlanned, week.ProgressPercentage, streak)
	if m.message != "" {
		status = m.message + "  ·  " + status
	}
	return statusStyle.Render(status)
}

func progressBar(completed, duration int) string {
	const width = 10
	if duration <= 0 {
		return strings.Repeat("░", width)
	}
	filled := completed * width / duration
	if filled > width {
		filled = width
	}
	return barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
