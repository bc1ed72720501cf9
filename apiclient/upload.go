package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/jrsteele09/research-platform-client/internal/utils"
)

// FileFieldName is the form key UploadFile places the file under.
const FileFieldName = "file"

// File is one file part of a multipart body.
type File struct {
	Name    string
	Content io.Reader
}

// FileUploader sends multipart form bodies through the client.
type FileUploader struct {
	client *Client
}

// UploadFile POSTs file under the "file" key together with the extra form
// fields. Responses follow the same contract as Client.Request.
func (u *FileUploader) UploadFile(ctx context.Context, endpoint string, file File, fields map[string]string) (json.RawMessage, error) {
	return u.UploadForm(ctx, http.MethodPost, endpoint, map[string]File{FileFieldName: file}, fields)
}

// UploadForm sends any number of file parts and fields with method.
// The body is buffered so it can be replayed after a token refresh.
func (u *FileUploader) UploadForm(ctx context.Context, method, endpoint string, files map[string]File, fields map[string]string) (json.RawMessage, error) {
	body, contentType, err := encodeMultipart(files, fields)
	if err != nil {
		return nil, newInvalidInputError(err)
	}

	// The bearer token is attached by execute, which also replaces it after a
	// refresh.
	header := http.Header{}
	header.Set(headerContentType, contentType)

	return u.client.execute(ctx, method, endpoint, header, body)
}

func encodeMultipart(files map[string]File, fields map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range utils.SortedKeys(files) {
		file := files[key]
		if file.Content == nil {
			return nil, "", fmt.Errorf("multipart field %q has no content", key)
		}
		part, err := w.CreateFormFile(key, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("read %q: %w", file.Name, err)
		}
	}

	for _, key := range utils.SortedKeys(fields) {
		if err := w.WriteField(key, fields[key]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
