// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"digimenu/internal/middleware"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartRequest(t *testing.T, tenantID uuid.UUID, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(data)
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, "/api/admin/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(middleware.WithTenant(req.Context(), tenantID))
}

func TestUpload(t *testing.T) {
	f := newFixture(t)
	tenant := uuid.New()

	rr := serve(f.admin.Upload, multipartRequest(t, tenant, "file", "Logo.PNG", pngBytes(t)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rr.Code, rr.Body)
	}
	got := decodeBody[uploadResponse](t, rr.Body.Bytes())

	prefix := "tenants/" + tenant.String() + "/"
	if !strings.HasPrefix(got.Key, prefix) || !strings.HasSuffix(got.Key, ".png") {
		t.Errorf("key: got %q, want %s{uuid}.png", got.Key, prefix)
	}
	if got.URL != fakeCDN+"/"+got.Key {
		t.Errorf("url: got %q", got.URL)
	}
	if f.objects.types[got.Key] != "image/png" {
		t.Errorf("content type: got %q, want image/png", f.objects.types[got.Key])
	}

	t.Run("svg is detected by extension", func(t *testing.T) {
		svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)
		rr := serve(f.admin.Upload, multipartRequest(t, tenant, "file", "logo.svg", svg))
		if rr.Code != http.StatusCreated {
			t.Fatalf("status: got %d, want 201 (%s)", rr.Code, rr.Body)
		}
		key := decodeBody[uploadResponse](t, rr.Body.Bytes()).Key
		if f.objects.types[key] != "image/svg+xml" {
			t.Errorf("content type: got %q", f.objects.types[key])
		}
	})

	t.Run("non-image is rejected", func(t *testing.T) {
		rr := serve(f.admin.Upload, multipartRequest(t, tenant, "file", "notes.txt", []byte("plain text here")))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rr.Code)
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		rr := serve(f.admin.Upload, multipartRequest(t, tenant, "image", "a.png", pngBytes(t)))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rr.Code)
		}
	})

	t.Run("too large", func(t *testing.T) {
		big := append(pngBytes(t), make([]byte, maxUploadSize+2048)...)
		rr := serve(f.admin.Upload, multipartRequest(t, tenant, "file", "big.png", big))
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status: got %d, want 413", rr.Code)
		}
	})

	t.Run("storage not configured", func(t *testing.T) {
		f.admin.objects = nil
		defer func() { f.admin.objects = f.objects }()
		rr := serve(f.admin.Upload, multipartRequest(t, tenant, "file", "a.png", pngBytes(t)))
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("status: got %d, want 503", rr.Code)
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		f.objects.failWith = errBackend
		defer func() { f.objects.failWith = nil }()
		rr := serve(f.admin.Upload, multipartRequest(t, tenant, "file", "a.png", pngBytes(t)))
		if rr.Code != http.StatusBadGateway {
			t.Errorf("status: got %d, want 502", rr.Code)
		}
	})
}

func TestDeleteUpload(t *testing.T) {
	f := newFixture(t)
	tenant := uuid.New()
	own := "tenants/" + tenant.String() + "/" + uuid.NewString() + ".png"
	foreign := "tenants/" + uuid.NewString() + "/" + uuid.NewString() + ".png"

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"own object", fakeCDN + "/" + own, http.StatusNoContent},
		{"other tenant's object", fakeCDN + "/" + foreign, http.StatusNotFound},
		{"foreign host", "https://elsewhere.test/" + own, http.StatusNotFound},
		{"path traversal", fakeCDN + "/tenants/" + tenant.String() + "/../x.png", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(f.admin.DeleteUpload, request(http.MethodDelete, "/", `{"url":"`+tt.url+`"}`, tenant, nil))
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}

	if len(f.objects.deleted) != 1 || f.objects.deleted[0] != own {
		t.Errorf("deleted: got %v, want [%s]", f.objects.deleted, own)
	}

	rr := serve(f.admin.DeleteUpload, request(http.MethodDelete, "/", `{}`, tenant, nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing url: got %d, want 400", rr.Code)
	}
}
