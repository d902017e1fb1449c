package backend

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/teemow/docsgate/internal/docs"
)

const exportedMessage = "PDF exported successfully"

// ExportPolicy decides where docs_export_pdf output goes.
//
// With Dir set, the file is written beneath Dir using only the base name of
// the requested path. Without Dir, AllowLocalPaths permits writing to the
// requested path as given; this is only enabled for the single-tenant stdio
// transport. Otherwise the PDF is returned inline, base64 encoded.
type ExportPolicy struct {
	Dir             string
	AllowLocalPaths bool
}

func (p ExportPolicy) target(documentID, outputPath string) string {
	switch {
	case p.Dir != "":
		name := filepath.Base(filepath.Clean("/" + outputPath))
		if name == "/" || name == "." {
			name = documentID + ".pdf"
		}
		return filepath.Join(p.Dir, name)
	case p.AllowLocalPaths && outputPath != "":
		return outputPath
	default:
		return ""
	}
}

func (p ExportPolicy) store(documentID, outputPath string, body io.Reader) (*docs.PDFExport, error) {
	path := p.target(documentID, outputPath)
	if path == "" {
		var buf bytes.Buffer
		n, err := io.Copy(&buf, body)
		if err != nil {
			return nil, fmt.Errorf("failed to read exported PDF: %w", err)
		}
		return &docs.PDFExport{
			Success:    true,
			DocumentID: documentID,
			Content:    base64.StdEncoding.EncodeToString(buf.Bytes()),
			Encoding:   "base64",
			Bytes:      n,
			Message:    exportedMessage,
		}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return &docs.PDFExport{
		Success:    true,
		DocumentID: documentID,
		OutputPath: path,
		Bytes:      n,
		Message:    exportedMessage,
	}, nil
}
