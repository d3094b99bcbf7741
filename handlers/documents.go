package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"lexdesk/logger"
	"lexdesk/services"

	"github.com/labstack/echo/v4"
)

func (a *API) ListDocumentsHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	docs, err := a.svc.Documents.ListByClient(c.Request().Context(), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

// UploadDocumentHandler accepts a multipart "file" with optional "type" and
// "description" fields. The part is staged in a temporary file and handed to
// the document service, which applies every check before storing it.
func (a *API) UploadDocumentHandler(c echo.Context) error {
	clientID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorBody{Error: "file is required", Field: "file"})
	}
	if file.Size > a.svc.Documents.MaxSize() {
		return apiError(fmt.Errorf("%w: %d bytes", services.ErrFileTooLarge, file.Size))
	}

	staged, err := stageUpload(file)
	if err != nil {
		return apiError(err)
	}
	defer os.Remove(staged)

	var description *string
	if d := c.FormValue("description"); d != "" {
		description = &d
	}
	doc, err := a.svc.Documents.Upload(c.Request().Context(), sessionOf(c), services.UploadInput{
		ClientID:     clientID,
		SourcePath:   staged,
		OriginalName: file.Filename,
		Type:         c.FormValue("type"),
		Description:  description,
	})
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, doc)
}

// stageUpload copies a multipart part into a temporary file and returns its path
func stageUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: failed to read upload: %w", services.ErrStorage, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "lexdesk-upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: failed to stage upload: %w", services.ErrStorage, err)
	}
	_, err = io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: failed to stage upload: %w", services.ErrStorage, err)
	}
	return tmp.Name(), nil
}

// DownloadDocumentHandler streams the stored bytes with the original file name
func (a *API) DownloadDocumentHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	rc, doc, err := a.svc.Documents.Open(c.Request().Context(), id)
	if err != nil {
		return apiError(err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", strconv.Quote(doc.OriginalName)))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(doc.Size, 10))
	logger.L().Infow("document downloaded", "document_id", doc.ID, "user_id", sessionOf(c).UserID())
	return c.Stream(http.StatusOK, services.ContentTypeFor(doc.StoredName), rc)
}

type documentDetailsRequest struct {
	Type        string  `json:"type"`
	Description *string `json:"description"`
}

func (a *API) UpdateDocumentHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req documentDetailsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := a.svc.Documents.UpdateDetails(ctx, sessionOf(c), id, req.Type, req.Description); err != nil {
		return apiError(err)
	}
	doc, err := a.svc.Documents.Get(ctx, id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (a *API) DeleteDocumentHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := a.svc.Documents.Delete(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
