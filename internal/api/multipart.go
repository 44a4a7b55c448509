package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
)

// Form accumulates fields and file parts for a multipart mutation body
// (news thumbnails and galleries, bid PDFs, banner images). Build it with
// AddField/AddFile, then pass it to PostMultipart or PutMultipart.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)

	return f
}

// AddField appends a plain text field. Errors are deferred to Encode so
// callers can chain adds without checking each one.
func (f *Form) AddField(name, value string) *Form {
	if f.err != nil {
		return f
	}

	if err := f.writer.WriteField(name, value); err != nil {
		f.err = fmt.Errorf("writing field %q: %w", name, err)
	}

	return f
}

// AddFile appends a file part, copying the content from r. Only the base
// name of filename goes on the wire, never a local path.
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	if f.err != nil {
		return f
	}

	part, err := f.writer.CreateFormFile(field, filepath.Base(filename))
	if err != nil {
		f.err = fmt.Errorf("creating file part %q: %w", field, err)

		return f
	}

	if _, err := io.Copy(part, r); err != nil {
		f.err = fmt.Errorf("copying file part %q: %w", field, err)
	}

	return f
}

// Encode finalizes the form and returns the body reader and content type,
// or the first error recorded during building.
func (f *Form) Encode() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}

	if err := f.writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return &f.buf, f.writer.FormDataContentType(), nil
}
