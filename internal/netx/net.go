// Package netx builds request bodies for the backend's multipart endpoints.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// MultipartBody is an encoded multipart/form-data payload.
type MultipartBody struct {
	Body        *bytes.Buffer
	ContentType string
}

// FileForm encodes the contents of r as a single file part named field.
func FileForm(field, filename string, r io.Reader) (*MultipartBody, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return &MultipartBody{Body: &buf, ContentType: mw.FormDataContentType()}, nil
}

// LocalFileForm reads the file at path and encodes it with its base name.
func LocalFileForm(field, path string) (*MultipartBody, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FileForm(field, filepath.Base(path), f)
}

// ValueForm encodes plain form fields, in the order given as key, value pairs.
func ValueForm(kv ...string) (*MultipartBody, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("odd number of form arguments")
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for i := 0; i < len(kv); i += 2 {
		if err := mw.WriteField(kv[i], kv[i+1]); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return &MultipartBody{Body: &buf, ContentType: mw.FormDataContentType()}, nil
}
