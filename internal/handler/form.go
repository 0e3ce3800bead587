package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

// multipartMemory is held in memory before parts spill to temp files.
const multipartMemory = 32 << 20

// isMultipart reports whether r carries a multipart/form-data body.
func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// parseMultipart reads a multipart body no larger than maxBytes.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return r.ParseMultipartForm(multipartMemory)
}

// formUpload returns the first file present under one of fields. The returned
// close func must be called once the upload has been consumed. A request with
// no file yields (nil, no-op, nil).
func formUpload(r *http.Request, fields ...string) (*model.Upload, func(), error) {
	for _, field := range fields {
		file, hdr, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, func() {}, err
		}
		up := &model.Upload{
			Body:        file,
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Size:        hdr.Size,
		}
		return up, func() { _ = file.Close() }, nil
	}
	return nil, func() {}, nil
}

// formTags accepts repeated tags fields as well as one comma separated value.
func formTags(r *http.Request) []string {
	var tags []string
	for _, v := range r.MultipartForm.Value["tags"] {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func formOptionalString(r *http.Request, key string) *string {
	if _, ok := r.MultipartForm.Value[key]; !ok {
		return nil
	}
	v := strings.TrimSpace(r.FormValue(key))
	return &v
}

func formOptionalFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, model.NewValidationError(key + " must be a number")
	}
	return &f, nil
}

func formOptionalBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, model.NewValidationError(key + " must be true or false")
	}
	return &b, nil
}
