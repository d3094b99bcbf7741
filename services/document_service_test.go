package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"lexdesk/models"
	"lexdesk/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingDeleteStorage wraps a real storage but refuses to delete
type failingDeleteStorage struct {
	StorageProvider
}

func (failingDeleteStorage) Delete(ctx context.Context, key string) error {
	return errors.New("permission denied")
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && info.Mode().IsRegular() {
			n++
		}
		return err
	})
	require.NoError(t, err)
	return n
}

func TestDocumentUpload(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.createClient(t, "Juan Pérez", "")
	src := writeTempFile(t, "Poder General.PDF", "%PDF-1.4 contenido")

	doc, err := env.svc.Documents.Upload(ctx, env.secretary, UploadInput{
		ClientID:    client.ID,
		SourcePath:  src,
		Type:        models.DocumentTypePower,
		Description: strPtr("Poder para juicios"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Poder General.PDF", doc.OriginalName)
	assert.Equal(t, "pdf", doc.Extension)
	assert.Equal(t, int64(len("%PDF-1.4 contenido")), doc.Size)
	assert.Regexp(t, regexp.MustCompile(`^20240315_120000_[0-9a-f]{8}\.pdf$`), doc.StoredName)

	stored, err := os.ReadFile(filepath.Join(env.docsDir, doc.StorageKey()))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 contenido", string(stored))

	rc, meta, err := env.svc.Documents.Open(ctx, doc.ID)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 contenido", string(body))
	assert.Equal(t, doc.StoredName, meta.StoredName)

	docs, err := env.svc.Documents.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	t.Run("type defaults to other", func(t *testing.T) {
		d, err := env.svc.Documents.Upload(ctx, env.secretary, UploadInput{ClientID: client.ID, SourcePath: src, OriginalName: "nota.txt"})
		require.NoError(t, err)
		assert.Equal(t, models.DocumentTypeOther, d.Type)
		assert.Equal(t, "txt", d.Extension)
	})
}

func TestDocumentUploadRejectedBeforeCopy(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.createClient(t, "Juan Pérez", "")

	big := filepath.Join(t.TempDir(), "expediente.pdf")
	f, err := os.Create(big)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(15*1024*1024))
	require.NoError(t, f.Close())

	small := writeTempFile(t, "dni.jpg", "jpeg")

	tests := []struct {
		name    string
		in      UploadInput
		wantErr error
	}{
		{"file over the limit", UploadInput{ClientID: client.ID, SourcePath: big}, ErrFileTooLarge},
		{"missing source", UploadInput{ClientID: client.ID, SourcePath: filepath.Join(t.TempDir(), "nada.pdf")}, ErrStorage},
		{"directory source", UploadInput{ClientID: client.ID, SourcePath: t.TempDir()}, ErrStorage},
		{"unknown client", UploadInput{ClientID: 999, SourcePath: small}, ErrValidation},
		{"unknown type", UploadInput{ClientID: client.ID, SourcePath: small, Type: "FOTO"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Documents.Upload(ctx, env.lawyer, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 0, countFiles(t, env.docsDir))
	n, err := env.svc.Repos.Documents.CountByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, errors.Is(ErrFileTooLarge, ErrStorage))
}

func TestDocumentDelete(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	client := env.createClient(t, "Juan Pérez", "")
	src := writeTempFile(t, "contrato.docx", "contrato")

	doc, err := env.svc.Documents.Upload(ctx, env.lawyer, UploadInput{ClientID: client.ID, SourcePath: src, Type: models.DocumentTypeContract})
	require.NoError(t, err)

	t.Run("row is kept when the file cannot be removed", func(t *testing.T) {
		failing := NewDocumentService(env.gw, env.svc.Repos.Documents, env.svc.Repos.Clients,
			failingDeleteStorage{NewLocalStorage(env.docsDir)}, 0, fixedClock)

		err := failing.Delete(ctx, env.lawyer, doc.ID)
		assert.ErrorIs(t, err, ErrStorage)

		kept, err := env.svc.Documents.Get(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc.StoredName, kept.StoredName)
		assert.Equal(t, 1, countFiles(t, env.docsDir))
	})

	t.Run("row and file go together", func(t *testing.T) {
		require.NoError(t, env.svc.Documents.Delete(ctx, env.lawyer, doc.ID))
		_, err := env.svc.Documents.Get(ctx, doc.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Equal(t, 0, countFiles(t, env.docsDir))
	})

	t.Run("file already missing is fine", func(t *testing.T) {
		d, err := env.svc.Documents.Upload(ctx, env.lawyer, UploadInput{ClientID: client.ID, SourcePath: src})
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(env.docsDir, d.StorageKey())))
		assert.NoError(t, env.svc.Documents.Delete(ctx, env.lawyer, d.ID))
	})

	t.Run("client with documents cannot be deleted", func(t *testing.T) {
		_, err := env.svc.Documents.Upload(ctx, env.lawyer, UploadInput{ClientID: client.ID, SourcePath: src})
		require.NoError(t, err)
		assert.ErrorIs(t, env.svc.Clients.Delete(ctx, env.admin, client.ID), ErrValidation)
	})
}

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir)
	ctx := context.Background()
	content := "hola"

	require.NoError(t, storage.Save(ctx, "3/a.txt", strings.NewReader(content), int64(len(content))))

	ok, err := storage.Exists(ctx, "3/a.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("existing key is not overwritten", func(t *testing.T) {
		err := storage.Save(ctx, "3/a.txt", strings.NewReader("otro"), 4)
		assert.Error(t, err)
		b, _ := os.ReadFile(filepath.Join(dir, "3", "a.txt"))
		assert.Equal(t, content, string(b))
	})

	t.Run("short copy leaves nothing behind", func(t *testing.T) {
		err := storage.Save(ctx, "3/b.txt", strings.NewReader("ab"), 10)
		assert.Error(t, err)
		ok, err := storage.Exists(ctx, "3/b.txt")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("path traversal is refused", func(t *testing.T) {
		err := storage.Save(ctx, "../escape.txt", strings.NewReader(content), int64(len(content)))
		assert.ErrorContains(t, err, "path traversal")
		_, err = storage.Open(ctx, "3/../../etc/passwd")
		assert.Error(t, err)
	})

	require.NoError(t, storage.Delete(ctx, "3/a.txt"))
	require.NoError(t, storage.Delete(ctx, "3/a.txt"), "deleting twice is fine")
	ok, err = storage.Exists(ctx, "3/a.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("1/x.pdf"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("1/sin-extension"))
}
