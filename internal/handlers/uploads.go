// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"digimenu/internal/storage"
)

// maxUploadSize is the maximum image size accepted (5 MB).
const maxUploadSize = 5 << 20

// allowedImageTypes lists the MIME types accepted for logos and product images.
var allowedImageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type uploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Upload stores an image under the tenant's prefix and returns its public
// URL. The URL is an opaque string the client puts into logo_url or
// image_url.
func (a *Admin) Upload(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	if a.objects == nil {
		writeMessage(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	if r.ContentLength > maxUploadSize+1024 {
		writeMessage(w, http.StatusRequestEntityTooLarge, "file too large (max 5 MB)")
		return
	}

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "file too large (max 5 MB)")
			return
		}
		writeMessage(w, http.StatusBadRequest, "expected a multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no file provided", Field: "file"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeMessage(w, http.StatusRequestEntityTooLarge, "file too large (max 5 MB)")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "failed to read file")
		return
	}

	contentType := http.DetectContentType(data)
	// DetectContentType reports SVGs as text/xml or text/plain.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}
	contentType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])

	defaultExt, allowed := allowedImageTypes[contentType]
	if !allowed {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("file type %q is not allowed", contentType),
			Field: "file",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" || len(ext) > 5 {
		ext = defaultExt
	}
	key := storage.ObjectKey(tenantID, ext)

	if err := a.objects.Upload(r.Context(), key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key, "tenant_id", tenantID)
		writeMessage(w, http.StatusBadGateway, "failed to upload file")
		return
	}

	slog.Info("image uploaded", "tenant_id", tenantID, "key", key, "size", len(data))
	writeJSON(w, http.StatusCreated, uploadResponse{URL: a.objects.FileURL(key), Key: key})
}

type deleteUploadRequest struct {
	URL string `json:"url" validate:"required"`
}

// DeleteUpload removes a previously uploaded image. Only objects under the
// tenant's own prefix can be deleted.
func (a *Admin) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := adminTenant(w, r)
	if !ok {
		return
	}
	if a.objects == nil {
		writeMessage(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	var req deleteUploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, r, err)
		return
	}

	key, ok := a.objects.ExtractKey(strings.TrimSpace(req.URL))
	if !ok || !storage.TenantOwns(tenantID, key) {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}

	if err := a.objects.Delete(r.Context(), key); err != nil {
		slog.Error("s3 delete failed", "error", err, "key", key, "tenant_id", tenantID)
		writeMessage(w, http.StatusBadGateway, "failed to delete file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
