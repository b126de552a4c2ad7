package readup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/readupapp/readup-go/internal/domain"
)

// MaxImportSize is the largest Goodreads CSV the backend accepts.
const MaxImportSize = 10 << 20 // 10MB

// UploadGoodreadsCSV uploads a Goodreads library export for asynchronous
// import. Only .csv files up to MaxImportSize are accepted; both limits
// are checked client-side before any bytes move.
func (c *Client) UploadGoodreadsCSV(ctx context.Context, filename string, r io.Reader, size int64) (*domain.ImportJob, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, fmt.Errorf("import file must be a .csv, got %q", filepath.Ext(filename))
	}
	if size > MaxImportSize {
		return nil, fmt.Errorf("import file is %d bytes, limit is %d", size, MaxImportSize)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}
	n, err := io.Copy(part, io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	if n > MaxImportSize {
		return nil, fmt.Errorf("import file exceeds %d bytes", int64(MaxImportSize))
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}

	var payload domain.ImportJob
	if err := c.doMultipart(ctx, "/imports/goodreads", writer.FormDataContentType(), &buf, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchImport retrieves one import job's status.
func (c *Client) FetchImport(ctx context.Context, id int64) (*domain.ImportJob, error) {
	var payload domain.ImportJob
	if err := c.get(ctx, fmt.Sprintf("/imports/%d", id), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchImports lists the user's import jobs, newest first.
func (c *Client) FetchImports(ctx context.Context) ([]domain.ImportJob, error) {
	var payload []domain.ImportJob
	if err := c.get(ctx, "/imports", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
