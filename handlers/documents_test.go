package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexdesk/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upload posts content as the "file" part of a multipart form
func (s *testServer) upload(t *testing.T, token string, clientID uint, name string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/clients/"+itoa(clientID)+"/documents", &body)
	req.RemoteAddr = "192.0.2.10:40000"
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestDocumentEndpoints(t *testing.T) {
	s := setupServer(t)
	secretary := s.login(t, "secretaria")
	clientID := s.createClient(t, secretary, "Juan Pérez")
	content := []byte("%PDF-1.4 poder general")

	rec := s.upload(t, secretary, clientID, "poder.pdf", content, map[string]string{
		"type": models.DocumentTypePower, "description": "Poder general judicial",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var doc models.Document
	decode(t, rec, &doc)
	assert.Equal(t, "poder.pdf", doc.OriginalName)
	assert.Equal(t, models.DocumentTypePower, doc.Type)
	assert.Equal(t, int64(len(content)), doc.Size)
	assert.Equal(t, "pdf", doc.Extension)

	t.Run("List", func(t *testing.T) {
		var docs []models.Document
		decode(t, s.do(t, http.MethodGet, "/api/clients/"+itoa(clientID)+"/documents", secretary, nil), &docs)
		require.Len(t, docs, 1)
		assert.Equal(t, doc.ID, docs[0].ID)
	})

	t.Run("Download", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/documents/"+itoa(doc.ID), secretary, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, content, rec.Body.Bytes())
		assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), `"poder.pdf"`)
	})

	t.Run("UpdateDetails", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/documents/"+itoa(doc.ID), secretary, map[string]interface{}{
			"type": models.DocumentTypeContract,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got models.Document
		decode(t, rec, &got)
		assert.Equal(t, models.DocumentTypeContract, got.Type)
		assert.Equal(t, doc.StoredName, got.StoredName)
	})

	t.Run("Rejected", func(t *testing.T) {
		rec := s.upload(t, secretary, 9999, "x.pdf", content, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = s.upload(t, secretary, clientID, "x.pdf", content, map[string]string{"type": "PASAPORTE"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "type", errorOf(t, rec).Field)

		big := bytes.Repeat([]byte("a"), 1024*1024+1)
		rec = s.upload(t, secretary, clientID, "grande.pdf", big, nil)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

		var docs []models.Document
		decode(t, s.do(t, http.MethodGet, "/api/clients/"+itoa(clientID)+"/documents", secretary, nil), &docs)
		assert.Len(t, docs, 1)
	})

	t.Run("MissingFilePart", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/clients/"+itoa(clientID)+"/documents", secretary, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "file", errorOf(t, rec).Field)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/documents/"+itoa(doc.ID), secretary, nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/documents/"+itoa(doc.ID), secretary, nil).Code)
	})
}
