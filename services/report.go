package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"lexdesk/models"
	"lexdesk/services/i18n"
)

//go:embed templates/case_report.html
var reportTemplates embed.FS

// CaseFinance holds the money totals shown on a case report
type CaseFinance struct {
	Expenses float64
	Fees     float64
	Payments float64
	Balance  float64
}

// CaseReport is the data rendered into the case report
type CaseReport struct {
	Lang        string
	GeneratedAt string
	Case        *models.Case
	Movements   []models.Movement
	Events      []models.Event
	// Finance is nil for roles that may not see money
	Finance *CaseFinance
}

// ReportService renders one-case summaries as HTML and PDF
type ReportService struct {
	repos *Repositories
	clock Clock
	pdf   PDFOptions
}

func NewReportService(r *Repositories, clock Clock, pdf PDFOptions) *ReportService {
	return &ReportService{repos: r, clock: clock, pdf: pdf}
}

// BuildCaseReport gathers the docket, agenda and, for financial roles, the totals of a case
func (s *ReportService) BuildCaseReport(ctx context.Context, sess *Session, caseID uint) (*CaseReport, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	c, err := s.repos.Cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("case", caseID)
	}
	movements, err := s.repos.Movements.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	events, err := s.repos.Events.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := i18n.EnsureLoaded(); err != nil {
		return nil, err
	}

	lang := i18n.GetLocale(ctx)
	report := &CaseReport{
		Lang:        lang,
		GeneratedAt: i18n.Translate(lang, "report.generated_at", map[string]interface{}{"date": s.clock().Format("02/01/2006 15:04")}),
		Case:        c,
		Movements:   movements,
		Events:      events,
	}

	if sess.Current().CanViewFinancials() {
		fin := &CaseFinance{}
		if fin.Expenses, err = s.repos.Expenses.SumByCase(ctx, caseID); err != nil {
			return nil, err
		}
		if fin.Fees, err = s.repos.Fees.SumComputedByCase(ctx, caseID); err != nil {
			return nil, err
		}
		if fin.Payments, err = s.repos.Payments.SumByCase(ctx, caseID); err != nil {
			return nil, err
		}
		fin.Balance = fin.Expenses + fin.Fees - fin.Payments
		report.Finance = fin
	}
	return report, nil
}

// RenderCaseReportHTML renders the case report as a standalone HTML page
func (s *ReportService) RenderCaseReportHTML(ctx context.Context, sess *Session, caseID uint) (string, error) {
	report, err := s.BuildCaseReport(ctx, sess, caseID)
	if err != nil {
		return "", err
	}
	return renderCaseReport(report)
}

// RenderCaseReportPDF renders the case report through headless Chrome
func (s *ReportService) RenderCaseReportPDF(ctx context.Context, sess *Session, caseID uint) ([]byte, error) {
	html, err := s.RenderCaseReportHTML(ctx, sess, caseID)
	if err != nil {
		return nil, err
	}
	return GeneratePDF(ctx, html, s.pdf)
}

func renderCaseReport(report *CaseReport) (string, error) {
	lang := report.Lang
	funcs := template.FuncMap{
		"t": func(key string) string { return i18n.Translate(lang, key) },
		"label": func(group, value string) string {
			return i18n.Label(lang, group, value)
		},
		"date":     func(t time.Time) string { return t.Format("02/01/2006") },
		"datetime": func(t time.Time) string { return t.Local().Format("02/01/2006 15:04") },
		"money":    formatMoney,
	}

	tmpl, err := template.New("case_report.html").Funcs(funcs).ParseFS(reportTemplates, "templates/case_report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}

// formatMoney renders amounts the local way: $ 1.234.567,89
func formatMoney(v interface{}) string {
	var amount float64
	switch n := v.(type) {
	case float64:
		amount = n
	case *float64:
		if n == nil {
			return ""
		}
		amount = *n
	default:
		return fmt.Sprint(v)
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	whole := fmt.Sprintf("%d", cents/100)

	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)

	return fmt.Sprintf("%s$ %s,%02d", sign, strings.Join(groups, "."), cents%100)
}
