package services

import (
	"context"
	"testing"
	"time"

	"lexdesk/models"
	"lexdesk/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCreateRejectsDuplicateDNI(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	first := &models.Client{FullName: "Juan Pérez", DNI: strPtr("30.123.456")}
	require.NoError(t, env.svc.Clients.Create(ctx, env.lawyer, first))
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, "30123456", *first.DNI)
	assert.True(t, first.Active)
	require.NotNil(t, first.CreatedByID)
	assert.Equal(t, env.lawyer.UserID(), *first.CreatedByID)

	second := &models.Client{FullName: "Other", DNI: strPtr("30123456")}
	err := env.svc.Clients.Create(ctx, env.lawyer, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, second.ID)

	all, err := env.svc.Clients.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Juan Pérez", all[0].FullName)
}

func TestClientDNIBoundaries(t *testing.T) {
	tests := []struct {
		dni   string
		valid bool
	}{
		{"1234567", true},
		{"12.345.678", true},
		{"123456", false},
		{"123456789", false},
	}

	env := setupEnv(t)
	for _, tt := range tests {
		t.Run(tt.dni, func(t *testing.T) {
			err := env.svc.Clients.Create(context.Background(), env.secretary, &models.Client{FullName: "Cliente " + tt.dni, DNI: strPtr(tt.dni)})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "dni", verr.Field)
		})
	}
}

func TestClientValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.createClient(t, "Empresa SA", "")
	require.NoError(t, env.svc.Clients.Create(ctx, env.lawyer, &models.Client{FullName: "Con CUIT", CUIT: strPtr("20-30123456-7")}))

	tomorrow := testNow.AddDate(0, 0, 1)
	today := testNow

	tests := []struct {
		name   string
		client models.Client
		field  string
	}{
		{"missing name", models.Client{FullName: "   "}, "full_name"},
		{"markup only name", models.Client{FullName: "<b></b>"}, "full_name"},
		{"bad email", models.Client{FullName: "Ana", Email: strPtr("ana.example.com")}, "email"},
		{"short cuit", models.Client{FullName: "Ana", CUIT: strPtr("20-301234-7")}, "cuit"},
		{"duplicate cuit", models.Client{FullName: "Ana", CUIT: strPtr("20301234567")}, "cuit"},
		{"future birth date", models.Client{FullName: "Ana", BirthDate: &tomorrow}, "birth_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.client
			err := env.svc.Clients.Create(ctx, env.lawyer, &c)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	t.Run("birth date today is accepted", func(t *testing.T) {
		c := &models.Client{FullName: "Recién Nacido", BirthDate: &today}
		require.NoError(t, env.svc.Clients.Create(ctx, env.lawyer, c))
		assert.Equal(t, day(2024, time.March, 15), *c.BirthDate)
	})

	t.Run("free text is stripped of markup", func(t *testing.T) {
		c := &models.Client{FullName: "  <script>alert(1)</script>María <i>López</i> ", Notes: strPtr("<p>  </p>")}
		require.NoError(t, env.svc.Clients.Create(ctx, env.lawyer, c))
		assert.Equal(t, "María López", c.FullName)
		assert.Nil(t, c.Notes)
	})

	all, err := env.svc.Clients.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestClientRoundTrip(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	birth := day(1980, time.May, 2)
	c := &models.Client{
		FullName:  "Juan Pérez",
		DNI:       strPtr("30123456"),
		BirthDate: &birth,
		Email:     strPtr("juan@example.com"),
		City:      strPtr("Rosario"),
	}
	require.NoError(t, env.svc.Clients.Create(ctx, env.lawyer, c))

	got, err := env.svc.Clients.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.FullName, got.FullName)
	assert.Equal(t, *c.DNI, *got.DNI)
	assert.True(t, birth.Equal(*got.BirthDate))
	assert.Equal(t, "juan@example.com", *got.Email)
	assert.Equal(t, "Rosario", *got.City)
	assert.Nil(t, got.CUIT)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.PostalCode)

	bare := env.createClient(t, "Sin Datos", "")
	got, err = env.svc.Clients.Get(ctx, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DNI)
	assert.Nil(t, got.BirthDate)
}

func TestClientUpdate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	c := env.createClient(t, "Juan Pérez", "30123456")
	require.NoError(t, env.svc.Clients.SetActive(ctx, env.lawyer, c.ID, false))

	upd := &models.Client{ID: c.ID, FullName: "Juan Carlos Pérez", DNI: strPtr("30123456"), Phone: strPtr("341 555-0101")}
	require.NoError(t, env.svc.Clients.Update(ctx, env.secretary, upd))

	got, err := env.svc.Clients.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan Carlos Pérez", got.FullName)
	assert.Equal(t, "341 555-0101", *got.Phone)
	assert.False(t, got.Active, "update must not reactivate")
	require.NotNil(t, got.CreatedByID)
	assert.Equal(t, env.lawyer.UserID(), *got.CreatedByID)

	err = env.svc.Clients.Update(ctx, env.lawyer, &models.Client{ID: 999, FullName: "Nadie"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientListActiveIsStable(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.createClient(t, "Zulema", "")
	b := env.createClient(t, "Bruno", "")
	env.createClient(t, "Ana", "")
	require.NoError(t, env.svc.Clients.SetActive(ctx, env.lawyer, b.ID, false))

	first, err := env.svc.Clients.List(ctx, true)
	require.NoError(t, err)
	second, err := env.svc.Clients.List(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "Ana", first[0].FullName)
	assert.Equal(t, "Zulema", first[1].FullName)
}

func TestClientDelete(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	referenced := env.createClient(t, "Juan Pérez", "")
	require.NoError(t, env.svc.Cases.Create(ctx, env.lawyer, &models.Case{
		Number: "100/2024", Title: "Pérez c/ Gómez", ClientName: "Juan Pérez", StartDate: day(2024, 1, 10),
	}))
	loose := env.createClient(t, "Sin Expedientes", "")

	t.Run("secretary cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, env.svc.Clients.Delete(ctx, env.secretary, loose.ID), ErrForbidden)
	})

	t.Run("client referenced by name is kept", func(t *testing.T) {
		err := env.svc.Clients.Delete(ctx, env.lawyer, referenced.ID)
		assert.ErrorIs(t, err, ErrValidation)
		_, err = env.svc.Clients.Get(ctx, referenced.ID)
		assert.NoError(t, err)
	})

	t.Run("unreferenced client is removed", func(t *testing.T) {
		require.NoError(t, env.svc.Clients.Delete(ctx, env.admin, loose.ID))
		_, err := env.svc.Clients.Get(ctx, loose.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, err, repository.ErrPersistence)
	})

	t.Run("missing client", func(t *testing.T) {
		assert.ErrorIs(t, env.svc.Clients.Delete(ctx, env.admin, 999), repository.ErrNotFound)
	})
}

func TestClientServiceRequiresSession(t *testing.T) {
	env := setupEnv(t)
	ended := NewSession(env.lawyer.Current(), testNow)
	ended.End()

	err := env.svc.Clients.Create(context.Background(), ended, &models.Client{FullName: "Ana"})
	assert.ErrorIs(t, err, ErrForbidden)
	err = env.svc.Clients.Create(context.Background(), nil, &models.Client{FullName: "Ana"})
	assert.ErrorIs(t, err, ErrForbidden)
}
