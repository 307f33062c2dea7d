// Package printers renders CLI output.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

const timeLayout = "15:04"

var (
	title = color.New(color.Bold, color.Underline)
	faint = color.New(color.Faint)
	good  = color.New(color.FgGreen)
	warn  = color.New(color.FgYellow)
	bad   = color.New(color.FgRed, color.Bold)
	bold  = color.New(color.Bold)
)

func Title(w io.Writer, s string) {
	_, _ = title.Fprintln(w, s)
}

func Success(w io.Writer, format string, args ...any) {
	_, _ = good.Fprintf(w, format+"\n", args...)
}

func Warn(w io.Writer, format string, args ...any) {
	_, _ = warn.Fprintf(w, format+"\n", args...)
}

func Faint(w io.Writer, format string, args ...any) {
	_, _ = faint.Fprintf(w, format+"\n", args...)
}

// Journals prints journal summaries as a table, newest first.
func Journals(w io.Writer, journals []domain.JournalSummary) {
	if len(journals) == 0 {
		Faint(w, " none")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Day"), bold.Sprint("Started"))
	for _, j := range journals {
		day := ""
		if t, err := time.Parse(domain.JournalDateLayout, j.JournalID); err == nil {
			day = t.Weekday().String()
		}
		tbl.AddRow(j.JournalID, day, j.CreatedAt.Local().Format("2006-01-02 "+timeLayout))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// Entries prints a journal's entries in order, marking the active one.
func Entries(w io.Writer, entries []domain.Entry, activeID string) {
	if len(entries) == 0 {
		Faint(w, " no entries")
		return
	}
	for i, e := range entries {
		marker := " "
		if e.EntryID == activeID {
			marker = "*"
		}
		_, _ = bold.Fprintf(w, "%s %d. ", marker, i+1)
		_, _ = faint.Fprintf(w, "%s\n", e.CreatedAt.Local().Format(timeLayout))
		content := strings.TrimSpace(e.Content)
		if content == "" {
			_, _ = faint.Fprintln(w, "     (empty)")
			continue
		}
		for _, line := range strings.Split(content, "\n") {
			_, _ = fmt.Fprintf(w, "     %s\n", line)
		}
	}
}

func riskColor(level string) *color.Color {
	switch level {
	case domain.RiskLow:
		return good
	case domain.RiskModerate:
		return warn
	default:
		return bad
	}
}

// Analysis prints the burnout index, its dimensions and the derived sentiment.
func Analysis(w io.Writer, res *domain.AnalysisResult) {
	level := res.RiskLevel
	if level == "" {
		level = domain.RiskLevelFor(res.Score())
	}
	_, _ = bold.Fprint(w, "Burnout index: ")
	_, _ = riskColor(level).Fprintf(w, "%.1f (%s)\n", res.Score(), level)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, s := range []*domain.MBIScore{res.EmotionalExhaustion, res.Depersonalization, res.PersonalAccomplishment} {
		if s == nil {
			continue
		}
		tbl.AddRow(string(s.Dimension), fmt.Sprintf("%.1f", s.NormalizedScore), fmt.Sprintf("%d signals", s.Frequency))
	}
	if len(tbl.Rows) > 0 {
		_, _ = fmt.Fprintln(w, tbl)
	}
	_, _ = fmt.Fprintf(w, "Sentiment: %s (%.0f%%)\n", res.Sentiment.Label, res.Sentiment.Confidence*100)
}

// QuizStats prints the stress-over-time series.
func QuizStats(w io.Writer, stats []domain.QuizStat) {
	if len(stats) == 0 {
		Faint(w, " no questionnaires yet")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Score"), "")
	for _, s := range stats {
		tbl.AddRow(s.Date, s.Score, strings.Repeat("▇", s.Score/5))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(w, tbl)
}

func Profile(w io.Writer, p *domain.Profile) {
	tbl := uitable.New()
	tbl.Separator = "  "
	name := p.DisplayName
	if name == "" {
		name = faint.Sprint("(not set)")
	}
	tbl.AddRow(bold.Sprint("Name"), name)
	tbl.AddRow(bold.Sprint("Timezone"), p.Timezone)
	tbl.AddRow(bold.Sprint("Date format"), p.DateFormat)
	tbl.AddRow(bold.Sprint("Time format"), p.TimeFormat)
	_, _ = fmt.Fprintln(w, tbl)
}
