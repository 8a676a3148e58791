package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/response"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/file"
)

type UploadHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type UploadHandlerImpl struct {
	fileService file.FileService
}

// Upload implements UploadHandler. The upload kind comes from the URL
// and picks the extension and size rules.
func (h *UploadHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	kind := file.Kind(chi.URLParam(r, "kind"))

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	upload, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer upload.Close()

	url, err := h.fileService.Upload(r.Context(), kind, userIDFromContext(r), upload, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		slog.Error("Upload service error", "error", err, "kind", kind)
		response.HandleError(w, err)
		return
	}

	slog.Info("File uploaded", "kind", kind, "filename", fileHeader.Filename)
	response.Created(w, "File uploaded successfully", map[string]string{"url": url})
}

func NewUploadHandler(fileService file.FileService) UploadHandler {
	return &UploadHandlerImpl{fileService: fileService}
}
