package services

import (
	"context"
	"testing"
	"time"

	"lexdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedFeeComputedAmount(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createCase(t, "1/2024", env.createClient(t, "Juan Pérez", ""))

	fee := &models.Fee{CaseID: c.ID, Type: models.FeeTypeFixed, FixedAmount: floatPtr(50000), Date: day(2024, 2, 1)}
	require.NoError(t, env.svc.Fees.Create(ctx, env.lawyer, fee))
	assert.Equal(t, models.FeeStatusPending, fee.Status)
	require.NotNil(t, fee.ComputedAmount)
	assert.Equal(t, 50000.0, *fee.ComputedAmount)

	got, err := env.svc.Fees.Get(ctx, env.lawyer, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, *got.ComputedAmount)

	got.FixedAmount = floatPtr(65000)
	got.ComputedAmount = floatPtr(1)
	require.NoError(t, env.svc.Fees.Update(ctx, env.admin, got))

	got, err = env.svc.Fees.Get(ctx, env.lawyer, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, 65000.0, *got.ComputedAmount)

	t.Run("fixed fee requires the amount", func(t *testing.T) {
		err := env.svc.Fees.Create(ctx, env.lawyer, &models.Fee{CaseID: c.ID, Type: models.FeeTypeFixed, Date: day(2024, 2, 1)})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "fixed_amount", verr.Field)
	})

	t.Run("percentage fee requires the percentage", func(t *testing.T) {
		err := env.svc.Fees.Create(ctx, env.lawyer, &models.Fee{CaseID: c.ID, Type: models.FeeTypePercentage, Date: day(2024, 2, 1)})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "percentage", verr.Field)
	})
}

func TestFeePercentageBoundaries(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createCase(t, "2/2024", env.createClient(t, "Ana", ""))

	tests := []struct {
		pct   float64
		valid bool
	}{
		{0, true},
		{100, true},
		{-0.01, false},
		{100.01, false},
	}
	for _, tt := range tests {
		fee := &models.Fee{CaseID: c.ID, Type: models.FeeTypePercentage, Percentage: floatPtr(tt.pct), Date: day(2024, 2, 1)}
		err := env.svc.Fees.Create(ctx, env.lawyer, fee)
		if tt.valid {
			assert.NoError(t, err, "percentage %v", tt.pct)
			continue
		}
		assert.ErrorIs(t, err, ErrValidation, "percentage %v", tt.pct)
	}

	fees, err := env.svc.Fees.ListByCase(ctx, env.lawyer, c.ID)
	require.NoError(t, err)
	assert.Len(t, fees, 2)
}

func TestFeeStatus(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createCase(t, "3/2024", env.createClient(t, "Ana", ""))
	fee := &models.Fee{CaseID: c.ID, Type: models.FeeTypeJudicial, ComputedAmount: floatPtr(120000), Date: day(2024, 2, 1)}
	require.NoError(t, env.svc.Fees.Create(ctx, env.lawyer, fee))

	require.NoError(t, env.svc.Fees.SetStatus(ctx, env.lawyer, fee.ID, models.FeeStatusPaid))
	paid, err := env.svc.Fees.ListByStatus(ctx, env.lawyer, models.FeeStatusPaid)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.True(t, paid[0].IsPaid())

	assert.ErrorIs(t, env.svc.Fees.SetStatus(ctx, env.lawyer, fee.ID, "COBRADO"), ErrValidation)
}

func TestExpenseRejectsNonPositiveAmount(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createCase(t, "4/2024", env.createClient(t, "Ana", ""))

	for _, amount := range []float64{-10, 0} {
		err := env.svc.Expenses.Create(ctx, env.lawyer, &models.Expense{
			CaseID: c.ID, Amount: amount, Date: testNow, Category: models.ExpenseCategoryStamp,
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "amount", verr.Field)
	}

	expenses, err := env.svc.Expenses.ListByCase(ctx, env.lawyer, c.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestExpenseTotals(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createCase(t, "5/2024", env.createClient(t, "Ana", ""))

	for _, amount := range []float64{1500.50, 2499.50} {
		require.NoError(t, env.svc.Expenses.Create(ctx, env.lawyer, &models.Expense{
			CaseID: c.ID, Amount: amount, Date: day(2024, 3, 1), Category: models.ExpenseCategoryCourtFee,
		}))
	}
	total, err := env.svc.Expenses.TotalByCase(ctx, env.lawyer, c.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4000.0, total, 0.001)

	err = env.svc.Expenses.Create(ctx, env.lawyer, &models.Expense{CaseID: c.ID, Amount: 1, Date: testNow, Category: "VIATICOS"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPaymentRejectsFutureDate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createCase(t, "6/2024", env.createClient(t, "Ana", ""))

	tomorrow := testNow.AddDate(0, 0, 1)
	err := env.svc.Payments.Create(ctx, env.lawyer, &models.Payment{
		CaseID: c.ID, Amount: 100, Date: tomorrow, Method: models.PaymentMethodCash,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)

	payments, err := env.svc.Payments.ListByCase(ctx, env.lawyer, c.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestPaymentDefaultsClientFromCase(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.createClient(t, "Juan Pérez", "")
	c := env.createCase(t, "7/2024", client)

	p := &models.Payment{CaseID: c.ID, Amount: 25000, Date: testNow, Method: models.PaymentMethodTransfer, Concept: strPtr("Anticipo")}
	require.NoError(t, env.svc.Payments.Create(ctx, env.lawyer, p))
	require.NotNil(t, p.ClientID)
	assert.Equal(t, client.ID, *p.ClientID)
	assert.True(t, day(2024, time.March, 15).Equal(p.Date))

	byClient, err := env.svc.Payments.ListByClient(ctx, env.lawyer, client.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	err = env.svc.Payments.Create(ctx, env.lawyer, &models.Payment{CaseID: 999, Amount: 1, Date: testNow, Method: models.PaymentMethodCash})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSecretaryCannotTouchFinancials(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createCase(t, "8/2024", env.createClient(t, "Ana", ""))

	err := env.svc.Expenses.Create(ctx, env.secretary, &models.Expense{CaseID: c.ID, Amount: 10, Date: testNow, Category: models.ExpenseCategoryCopies})
	assert.ErrorIs(t, err, ErrForbidden)
	err = env.svc.Payments.Create(ctx, env.secretary, &models.Payment{CaseID: c.ID, Amount: 10, Date: testNow, Method: models.PaymentMethodCash})
	assert.ErrorIs(t, err, ErrForbidden)
	err = env.svc.Fees.Create(ctx, env.secretary, &models.Fee{CaseID: c.ID, Type: models.FeeTypeFixed, FixedAmount: floatPtr(1), Date: testNow})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.svc.Fees.ListByCase(ctx, env.secretary, c.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = env.svc.Payments.TotalByCase(ctx, env.secretary, c.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
