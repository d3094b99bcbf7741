package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"lexdesk/services/i18n"

	"github.com/xuri/excelize/v2"
)

const exportDateFormat = "02/01/2006"

// ExportService writes listings as .xlsx workbooks with headers in the caller's language
type ExportService struct {
	repos *Repositories
}

func NewExportService(r *Repositories) *ExportService {
	return &ExportService{repos: r}
}

// ExportClients writes every client, active or not, to a single sheet
func (s *ExportService) ExportClients(ctx context.Context, sess *Session) (*bytes.Buffer, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	clients, err := s.repos.Clients.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := i18n.EnsureLoaded(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "export.clients.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	headers := []string{
		i18n.T(ctx, "export.clients.id"),
		i18n.T(ctx, "export.clients.full_name"),
		i18n.T(ctx, "export.clients.dni"),
		i18n.T(ctx, "export.clients.cuit"),
		i18n.T(ctx, "export.clients.email"),
		i18n.T(ctx, "export.clients.phone"),
		i18n.T(ctx, "export.clients.mobile"),
		i18n.T(ctx, "export.clients.address"),
		i18n.T(ctx, "export.clients.city"),
		i18n.T(ctx, "export.clients.province"),
		i18n.T(ctx, "export.clients.active"),
	}
	writeHeader(f, sheet, headers)

	yes, no := i18n.T(ctx, "common.yes"), i18n.T(ctx, "common.no")
	for i, c := range clients {
		active := no
		if c.Active {
			active = yes
		}
		writeRow(f, sheet, i+2, []interface{}{
			c.ID, c.FullName, str(c.DNI), str(c.CUIT), str(c.Email), str(c.Phone),
			str(c.Mobile), str(c.Address), str(c.City), str(c.Province), active,
		})
	}
	f.SetColWidth(sheet, "B", "B", 32)
	f.SetColWidth(sheet, "C", "K", 16)

	return writeWorkbook(f)
}

// ExportCases writes every case with its creator's name
func (s *ExportService) ExportCases(ctx context.Context, sess *Session) (*bytes.Buffer, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	cases, err := s.repos.Cases.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := i18n.EnsureLoaded(); err != nil {
		return nil, err
	}
	lang := i18n.GetLocale(ctx)

	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "export.cases.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	writeHeader(f, sheet, []string{
		i18n.T(ctx, "export.cases.number"),
		i18n.T(ctx, "export.cases.title"),
		i18n.T(ctx, "export.cases.client"),
		i18n.T(ctx, "export.cases.opposing_party"),
		i18n.T(ctx, "export.cases.jurisdiction"),
		i18n.T(ctx, "export.cases.court"),
		i18n.T(ctx, "export.cases.clerk"),
		i18n.T(ctx, "export.cases.status"),
		i18n.T(ctx, "export.cases.start_date"),
		i18n.T(ctx, "export.cases.estimated_amount"),
		i18n.T(ctx, "export.cases.created_by"),
	})

	for i, c := range cases {
		var amount interface{} = ""
		if c.EstimatedAmount != nil {
			amount = *c.EstimatedAmount
		}
		writeRow(f, sheet, i+2, []interface{}{
			c.Number, c.Title, c.ClientName, str(c.OpposingParty), str(c.Jurisdiction),
			str(c.Court), str(c.Clerk), i18n.Label(lang, "case_status", c.Status),
			c.StartDate.Format(exportDateFormat), amount, c.CreatedByName,
		})
	}
	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 48)
	f.SetColWidth(sheet, "C", "K", 18)

	return writeWorkbook(f)
}

// ExportCaseLedger writes the expenses, fees and payments of one case on three
// sheets, each closed by a total row
func (s *ExportService) ExportCaseLedger(ctx context.Context, sess *Session, caseID uint) (*bytes.Buffer, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	c, err := s.repos.Cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("case", caseID)
	}
	expenses, err := s.repos.Expenses.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	fees, err := s.repos.Fees.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repos.Payments.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := i18n.EnsureLoaded(); err != nil {
		return nil, err
	}
	lang := i18n.GetLocale(ctx)
	total := i18n.T(ctx, "common.total")

	f := excelize.NewFile()
	defer f.Close()

	// Expenses
	sheet := i18n.T(ctx, "export.ledger.expenses")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	writeHeader(f, sheet, []string{
		i18n.T(ctx, "export.ledger.date"),
		i18n.T(ctx, "export.ledger.category"),
		i18n.T(ctx, "export.ledger.amount"),
		i18n.T(ctx, "export.ledger.description"),
		i18n.T(ctx, "export.ledger.receipt"),
	})
	var sum float64
	for i, e := range expenses {
		writeRow(f, sheet, i+2, []interface{}{
			e.Date.Format(exportDateFormat), i18n.Label(lang, "expense_category", e.Category),
			e.Amount, str(e.Description), str(e.Receipt),
		})
		sum += e.Amount
	}
	writeTotal(f, sheet, len(expenses)+2, total, "C", sum)

	// Fees
	sheet = i18n.T(ctx, "export.ledger.fees")
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	writeHeader(f, sheet, []string{
		i18n.T(ctx, "export.ledger.date"),
		i18n.T(ctx, "export.ledger.type"),
		i18n.T(ctx, "export.ledger.percentage"),
		i18n.T(ctx, "export.ledger.fixed_amount"),
		i18n.T(ctx, "export.ledger.computed_amount"),
		i18n.T(ctx, "export.ledger.status"),
		i18n.T(ctx, "export.ledger.description"),
	})
	sum = 0
	for i, fee := range fees {
		writeRow(f, sheet, i+2, []interface{}{
			fee.Date.Format(exportDateFormat), i18n.Label(lang, "fee_type", fee.Type),
			num(fee.Percentage), num(fee.FixedAmount), num(fee.ComputedAmount),
			i18n.Label(lang, "fee_status", fee.Status), str(fee.Description),
		})
		if fee.ComputedAmount != nil {
			sum += *fee.ComputedAmount
		}
	}
	writeTotal(f, sheet, len(fees)+2, total, "E", sum)

	// Payments
	sheet = i18n.T(ctx, "export.ledger.payments")
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	writeHeader(f, sheet, []string{
		i18n.T(ctx, "export.ledger.date"),
		i18n.T(ctx, "export.ledger.method"),
		i18n.T(ctx, "export.ledger.amount"),
		i18n.T(ctx, "export.ledger.concept"),
		i18n.T(ctx, "export.ledger.receipt"),
	})
	sum = 0
	for i, p := range payments {
		writeRow(f, sheet, i+2, []interface{}{
			p.Date.Format(exportDateFormat), i18n.Label(lang, "payment_method", p.Method),
			p.Amount, str(p.Concept), str(p.Receipt),
		})
		sum += p.Amount
	}
	writeTotal(f, sheet, len(payments)+2, total, "C", sum)

	return writeWorkbook(f)
}

// ExportFileName builds a dated file name such as expedientes_20240301.xlsx
func ExportFileName(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, at.Format("20060102"))
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func writeTotal(f *excelize.File, sheet string, row int, label, col string, sum float64) {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
	f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), sum)
	totalStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", col, row), totalStyle)
}

func writeWorkbook(f *excelize.File) (*bytes.Buffer, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
