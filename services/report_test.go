package services

import (
	"context"
	"testing"

	"lexdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseReport(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createCase(t, "30/2024", env.createClient(t, "Ana Gómez", ""))

	require.NoError(t, env.svc.Movements.Create(ctx, env.lawyer, &models.Movement{
		CaseID: c.ID, Date: day(2024, 2, 1), Type: models.MovementTypeFiling, Description: "Se presenta demanda",
	}))
	require.NoError(t, env.svc.Expenses.Create(ctx, env.lawyer, &models.Expense{
		CaseID: c.ID, Amount: 5000, Date: day(2024, 2, 2), Category: models.ExpenseCategoryCourtFee,
	}))
	require.NoError(t, env.svc.Fees.Create(ctx, env.lawyer, &models.Fee{
		CaseID: c.ID, Type: models.FeeTypeFixed, FixedAmount: floatPtr(100000), Date: day(2024, 2, 1),
	}))
	require.NoError(t, env.svc.Payments.Create(ctx, env.lawyer, &models.Payment{
		CaseID: c.ID, Amount: 40000, Date: day(2024, 3, 1), Method: models.PaymentMethodTransfer,
	}))

	t.Run("financial role", func(t *testing.T) {
		report, err := env.svc.Reports.BuildCaseReport(ctx, env.lawyer, c.ID)
		require.NoError(t, err)
		require.NotNil(t, report.Finance)
		assert.InDelta(t, 5000, report.Finance.Expenses, 0.001)
		assert.InDelta(t, 100000, report.Finance.Fees, 0.001)
		assert.InDelta(t, 40000, report.Finance.Payments, 0.001)
		assert.InDelta(t, 65000, report.Finance.Balance, 0.001)
		assert.Len(t, report.Movements, 1)

		html, err := env.svc.Reports.RenderCaseReportHTML(ctx, env.lawyer, c.ID)
		require.NoError(t, err)
		assert.Contains(t, html, "30/2024")
		assert.Contains(t, html, "Se presenta demanda")
		assert.Contains(t, html, "Resumen financiero")
		assert.Contains(t, html, "$ 65.000,00")
		assert.Contains(t, html, "Sin eventos registrados")
	})

	t.Run("secretary sees no money", func(t *testing.T) {
		report, err := env.svc.Reports.BuildCaseReport(ctx, env.secretary, c.ID)
		require.NoError(t, err)
		assert.Nil(t, report.Finance)

		html, err := env.svc.Reports.RenderCaseReportHTML(ctx, env.secretary, c.ID)
		require.NoError(t, err)
		assert.NotContains(t, html, "Resumen financiero")
	})

	t.Run("unknown case", func(t *testing.T) {
		_, err := env.svc.Reports.BuildCaseReport(ctx, env.lawyer, 999)
		assert.Error(t, err)
	})
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{1234567.891, "$ 1.234.567,89"},
		{0.0, "$ 0,00"},
		{999.999, "$ 1.000,00"},
		{-5.5, "-$ 5,50"},
		{floatPtr(42), "$ 42,00"},
		{(*float64)(nil), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in))
	}
}
