package handlers

import (
	"net/http"
	"testing"

	"lexdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEndpoints(t *testing.T) {
	s := setupServer(t)
	lawyer := s.login(t, "abogado")
	secretary := s.login(t, "secretaria")

	t.Run("CreateAndGet", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/clients", secretary, map[string]interface{}{
			"full_name": "  Juan Pérez ", "dni": "20.123.456", "email": "juan@example.com",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created models.Client
		decode(t, rec, &created)
		assert.Equal(t, "Juan Pérez", created.FullName)
		require.NotNil(t, created.DNI)
		assert.Equal(t, "20123456", *created.DNI)
		assert.True(t, created.Active)

		rec = s.do(t, http.MethodGet, "/api/clients/"+itoa(created.ID), secretary, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got models.Client
		decode(t, rec, &got)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("DuplicateDNI", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/clients", secretary, map[string]interface{}{
			"full_name": "Otro Pérez", "dni": "20123456",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "dni", errorOf(t, rec).Field)
	})

	t.Run("Validation", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/clients", secretary, map[string]interface{}{"full_name": "  "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "full_name", errorOf(t, rec).Field)

		rec = s.do(t, http.MethodPost, "/api/clients", secretary, map[string]interface{}{"full_name": "X", "email": "no-es-mail"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "email", errorOf(t, rec).Field)
	})

	t.Run("NotFoundAndBadID", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/clients/9999", secretary, nil).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/clients/abc", secretary, nil).Code)
	})

	t.Run("UpdateKeepsOmittedFields", func(t *testing.T) {
		id := s.createClient(t, secretary, "María López")
		rec := s.do(t, http.MethodPut, "/api/clients/"+itoa(id), secretary, map[string]interface{}{"city": "Rosario"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated models.Client
		decode(t, rec, &updated)
		assert.Equal(t, "María López", updated.FullName)
		require.NotNil(t, updated.City)
		assert.Equal(t, "Rosario", *updated.City)
	})

	t.Run("SearchAndActiveFilter", func(t *testing.T) {
		id := s.createClient(t, secretary, "Inactivo Gómez")
		rec := s.do(t, http.MethodPut, "/api/clients/"+itoa(id)+"/active", secretary, map[string]bool{"active": false})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		var found []models.Client
		decode(t, s.do(t, http.MethodGet, "/api/clients?q=gómez", secretary, nil), &found)
		require.Len(t, found, 1)
		assert.Equal(t, id, found[0].ID)

		var active []models.Client
		decode(t, s.do(t, http.MethodGet, "/api/clients?active=true", secretary, nil), &active)
		for _, c := range active {
			assert.NotEqual(t, id, c.ID)
		}
	})

	t.Run("DeleteRequiresLawyer", func(t *testing.T) {
		id := s.createClient(t, secretary, "Para Borrar")
		assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/clients/"+itoa(id), secretary, nil).Code)
		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/clients/"+itoa(id), lawyer, nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/clients/"+itoa(id), lawyer, nil).Code)
	})

	t.Run("ClientWithCasesCannotBeDeleted", func(t *testing.T) {
		id := s.createClient(t, lawyer, "Con Expediente")
		s.createCase(t, lawyer, "555/2024", id)

		rec := s.do(t, http.MethodDelete, "/api/clients/"+itoa(id), lawyer, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "client", errorOf(t, rec).Field)

		var cases []models.Case
		decode(t, s.do(t, http.MethodGet, "/api/clients/"+itoa(id)+"/cases", lawyer, nil), &cases)
		assert.Len(t, cases, 1)
	})
}
