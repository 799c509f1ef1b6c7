package verdict

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/qa-inspector/internal/application"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

// Render draws the verdict board of every document.
func Render(statuses []application.DocumentStatus, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderBoard(statuses, opts, s)
	})
}

// RenderAuditTrail draws the audit entries of one document, oldest first.
func RenderAuditTrail(document domain.Document, entries []domain.AuditEntry, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderAuditTrail(document, entries, opts, s)
	})
}

func renderBoard(statuses []application.DocumentStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Document Verdicts"),
		s.header.Render(fmt.Sprintf("documents: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No documents registered."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderDocument(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderDocument(status application.DocumentStatus, opts RenderOptions, s styles) string {
	title := s.document.Render(documentTitle(status.Document))
	if status.FullyApproved {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, " ", s.ready.Render("[fully approved]"))
	}

	parts := []string{title}
	for _, stage := range status.Stages {
		parts = append(parts, stageLines(stage, opts, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func stageLines(stage application.StageView, opts RenderOptions, s styles) []string {
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.stage.Render(string(stage.Stage)+":"),
		s.badge(stage.Status).Render(statusLabel(stage.Status)),
	)
	if stage.ActorName != "" || !stage.Timestamp.IsZero() {
		line += " " + s.meta.Render(decidedBy(stage.ActorName, stage.Timestamp, opts.Now))
	}

	lines := []string{line}
	if len(stage.Flags) > 0 {
		lines = append(lines, s.detail.Render("flags: "+strings.Join(stage.Flags, ", ")))
	}
	if stage.Observations != "" {
		lines = append(lines, s.detail.Render("observations: "+stage.Observations))
	}
	if len(stage.Evidence) > 0 {
		lines = append(lines, s.detail.Render(fmt.Sprintf("evidence: %d file%s", len(stage.Evidence), plural(len(stage.Evidence)))))
	}

	return lines
}

func renderAuditTrail(document domain.Document, entries []domain.AuditEntry, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Audit Trail"),
		s.document.Render(documentTitle(document)),
		s.header.Render(fmt.Sprintf("entries: %d", len(entries))),
	}

	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No verdicts recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, entry := range entries {
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.stage.Render(string(entry.Stage)+":"),
			s.badge(actionStatus(entry.Action)).Render(string(entry.Action)),
			" ",
			s.meta.Render(decidedBy(entry.ActorName, entry.At, opts.Now)),
		)
		lines = append(lines, line)
		if len(entry.Flags) > 0 {
			lines = append(lines, s.detail.Render("flags: "+strings.Join(entry.Flags, ", ")))
		}
		if entry.Observations != "" {
			lines = append(lines, s.detail.Render("observations: "+entry.Observations))
		}
		for _, ref := range entry.EvidenceRefs {
			lines = append(lines, s.detail.Render("evidence: "+string(ref)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func documentTitle(document domain.Document) string {
	name := document.DisplayName()
	pages := ""
	if document.PageCount > 0 {
		pages = fmt.Sprintf(", %d page%s", document.PageCount, plural(document.PageCount))
	}
	if name == string(document.ID) {
		if pages == "" {
			return name
		}
		return fmt.Sprintf("%s (%s)", name, strings.TrimPrefix(pages, ", "))
	}
	return fmt.Sprintf("%s (%s%s)", name, document.ID, pages)
}

func statusLabel(status string) string {
	switch status {
	case "not_sent":
		return "not sent"
	case "":
		return "pending"
	default:
		return status
	}
}

func actionStatus(action domain.AuditAction) string {
	switch action {
	case domain.AuditActionApproved:
		return "approved"
	case domain.AuditActionRejected:
		return "rejected"
	case domain.AuditActionDeliverySent:
		return "sent"
	default:
		return "pending"
	}
}

func decidedBy(actor string, at, now time.Time) string {
	parts := make([]string, 0, 2)
	if actor != "" {
		parts = append(parts, "by "+actor)
	}
	if !at.IsZero() {
		parts = append(parts, formatWhen(at, now))
	}
	return strings.Join(parts, " ")
}

func formatWhen(at, now time.Time) string {
	if now.IsZero() || at.After(now) {
		return "at " + at.Format("2006-01-02 15:04")
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		minutes := int(math.Floor(elapsed.Minutes()))
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	case elapsed < 24*time.Hour:
		hours := int(math.Floor(elapsed.Hours()))
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	default:
		return "on " + at.Format("02 Jan 2006")
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
