package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jenny-yujl/marketingTrain/internal/services"
)

const (
	// MaxImageBytes caps an upload request, multipart overhead included.
	MaxImageBytes  = 10 << 20
	maxImageMemory = 8 << 20
)

// ObjectUploader stores an uploaded file and reports where it went.
type ObjectUploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (*services.UploadedObject, error)
}

type ImageHandler struct {
	*BaseHandler
	uploader ObjectUploader
}

func NewImageHandler(base *BaseHandler, uploader ObjectUploader) *ImageHandler {
	return &ImageHandler{BaseHandler: base, uploader: uploader}
}

// UploadProductImage handles POST /api/products/images
// @Tags Products
// @Summary Upload product image
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} services.UploadedObject
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/images [post]
func (h *ImageHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONErrorResponse(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Image is too large")
			return
		}
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "file is required")
		return
	}
	defer file.Close()

	// The sniffed type wins; the declared one is used only when sniffing is
	// inconclusive.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to read file")
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if declared, _, err := mime.ParseMediaType(header.Header.Get("Content-Type")); err == nil &&
		strings.HasPrefix(declared, "image/") && contentType == "application/octet-stream" {
		contentType = declared
	}
	if !strings.HasPrefix(contentType, "image/") {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "file must be an image")
		return
	}

	obj, err := h.uploader.Upload(r.Context(), header.Filename, contentType, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		h.serverError(w, r, "upload_failed", "Failed to upload image", err)
		return
	}
	writeJSON(w, http.StatusCreated, obj)
}
