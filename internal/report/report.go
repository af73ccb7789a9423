// Package report builds the per-employee progress export.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"cloud.google.com/go/civil"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gosuda/teamboard/internal/domain"
	"github.com/gosuda/teamboard/internal/filter"
)

// Report is the export document. Field names and nesting are consumed by
// downstream tooling and must stay stable.
type Report struct {
	Employee    string         `json:"employee"`
	DateFilter  string         `json:"dateFilter"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Summary     filter.Summary `json:"summary"`
	Tasks       []Entry        `json:"tasks"`
}

// Entry is one task line of a report. DueDate is empty when the task has none.
type Entry struct {
	Title    string `json:"title"`
	Client   string `json:"client"`
	DueDate  string `json:"dueDate"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Priority string `json:"priority"`
}

// Build summarizes tasks for employee. tasks must already be narrowed to the
// employee and the date window described by label.
func Build(employee, label string, tasks []*domain.Task, today civil.Date, now time.Time) *Report {
	r := &Report{
		Employee:    employee,
		DateFilter:  label,
		GeneratedAt: now.UTC(),
		Summary:     filter.Summarize(tasks, today),
		Tasks:       make([]Entry, 0, len(tasks)),
	}
	for _, t := range tasks {
		e := Entry{
			Title:    t.Title,
			Client:   t.Client,
			Status:   t.SubStatus,
			Progress: t.Progress,
			Priority: string(t.Priority),
		}
		if t.DueDate.IsValid() {
			e.DueDate = t.DueDate.String()
		}
		r.Tasks = append(r.Tasks, e)
	}
	return r
}

// Encode writes r as JSON indented with two spaces.
func Encode(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report.Encode: %w", err)
	}
	return nil
}

// Filename returns the download name, e.g. report-jane-doe-2024-03-15.json.
func Filename(employee string, day civil.Date) string {
	return fmt.Sprintf("report-%s-%s.json", Slug(employee), day)
}

// Slug folds s to lowercase ASCII: accents are stripped, every run of other
// characters becomes a single dash. Names with nothing left map to "all".
func Slug(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	dash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "all"
	}
	return out
}
