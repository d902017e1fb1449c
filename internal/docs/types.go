package docs

import "fmt"

// DocumentMimeType is the Drive MIME type of a Google Doc.
const DocumentMimeType = "application/vnd.google-apps.document"

// DefaultListMaxResults is the page size used by ListDocuments when none is given.
const DefaultListMaxResults = 10

// DocumentURL returns the browser edit link of a document.
func DocumentURL(documentID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", documentID)
}

// Document identifies a document by id, title and edit link.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// ContentBlock is one structural element of a document body.
// Type is "paragraph" or "other"; Text concatenates the paragraph's text runs.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// DocumentContent is the result of GetDocument.
type DocumentContent struct {
	DocumentID string         `json:"documentId"`
	Title      string         `json:"title"`
	Content    []ContentBlock `json:"content"`
}

// DocumentSummary is one entry of ListDocuments.
type DocumentSummary struct {
	DocumentID   string `json:"documentId"`
	Title        string `json:"title"`
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	URL          string `json:"url"`
}

// DocumentList is the result of ListDocuments.
type DocumentList struct {
	TotalDocs int               `json:"totalDocs"`
	Documents []DocumentSummary `json:"documents"`
}

// MutationResult acknowledges an edit or deletion.
type MutationResult struct {
	Success    bool   `json:"success,omitempty"`
	DocumentID string `json:"documentId"`
	Message    string `json:"message"`
}

// PDFExport describes an exported PDF. Exactly one of OutputPath and
// Content is set: OutputPath when the file was written locally, Content
// (base64) when the PDF is returned inline.
type PDFExport struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"documentId"`
	OutputPath string `json:"outputPath,omitempty"`
	Content    string `json:"content,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Bytes      int64  `json:"bytes"`
	Message    string `json:"message"`
}
