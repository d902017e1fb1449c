package docs

import (
	"context"
	"fmt"
	"io"
	"strings"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
)

// PDFMimeType is the export format used by ExportPDF.
const PDFMimeType = "application/pdf"

// Client wraps the Google Docs and Drive API services
type Client struct {
	docsService  *docs.Service
	driveService *drive.Service
}

// NewClient creates a Client from authenticated services.
func NewClient(docsService *docs.Service, driveService *drive.Service) *Client {
	return &Client{
		docsService:  docsService,
		driveService: driveService,
	}
}

// CreateDocument creates an empty document with the given title.
func (c *Client) CreateDocument(ctx context.Context, title string) (*Document, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	doc, err := c.docsService.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return &Document{
		DocumentID: doc.DocumentId,
		Title:      doc.Title,
		URL:        DocumentURL(doc.DocumentId),
	}, nil
}

// GetDocument retrieves a document and flattens its body into blocks.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*DocumentContent, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	doc, err := c.docsService.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}

	return &DocumentContent{
		DocumentID: doc.DocumentId,
		Title:      doc.Title,
		Content:    contentBlocks(doc.Body),
	}, nil
}

// contentBlocks converts structural elements to blocks. Paragraphs carry the
// concatenation of their text runs; anything else is an empty "other" block.
func contentBlocks(body *docs.Body) []ContentBlock {
	if body == nil {
		return []ContentBlock{}
	}

	blocks := make([]ContentBlock, 0, len(body.Content))
	for _, el := range body.Content {
		if el == nil {
			continue
		}
		if el.Paragraph == nil {
			blocks = append(blocks, ContentBlock{Type: "other"})
			continue
		}

		var text strings.Builder
		for _, pe := range el.Paragraph.Elements {
			if pe != nil && pe.TextRun != nil {
				text.WriteString(pe.TextRun.Content)
			}
		}
		blocks = append(blocks, ContentBlock{Type: "paragraph", Text: text.String()})
	}
	return blocks
}

// AppendText inserts text at the end of the document body.
func (c *Client) AppendText(ctx context.Context, documentID, text string) (*MutationResult, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	req := &docs.Request{
		InsertText: &docs.InsertTextRequest{
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
			Text:                 text,
		},
	}
	if err := c.batchUpdate(ctx, documentID, req); err != nil {
		return nil, fmt.Errorf("failed to append text to document %s: %w", documentID, err)
	}

	return &MutationResult{DocumentID: documentID, Message: "Text appended successfully"}, nil
}

// ReplaceText replaces every case-insensitive occurrence of findText.
func (c *Client) ReplaceText(ctx context.Context, documentID, findText, replaceWithText string) (*MutationResult, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}
	if findText == "" {
		return nil, fmt.Errorf("findText is required")
	}

	req := &docs.Request{
		ReplaceAllText: &docs.ReplaceAllTextRequest{
			ReplaceText: replaceWithText,
			ContainsText: &docs.SubstringMatchCriteria{
				Text:      findText,
				MatchCase: false,
			},
		},
	}
	if err := c.batchUpdate(ctx, documentID, req); err != nil {
		return nil, fmt.Errorf("failed to replace text in document %s: %w", documentID, err)
	}

	return &MutationResult{DocumentID: documentID, Message: "Text replaced successfully"}, nil
}

func (c *Client) batchUpdate(ctx context.Context, documentID string, requests ...*docs.Request) error {
	_, err := c.docsService.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// ListDocuments lists the user's Google Docs.
func (c *Client) ListDocuments(ctx context.Context, maxResults int) (*DocumentList, error) {
	if maxResults <= 0 {
		maxResults = DefaultListMaxResults
	}

	resp, err := c.driveService.Files.List().
		Q(fmt.Sprintf("mimeType='%s'", DocumentMimeType)).
		Spaces("drive").
		Fields("files(id, name, createdTime, modifiedTime)").
		PageSize(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	list := &DocumentList{
		TotalDocs: len(resp.Files),
		Documents: make([]DocumentSummary, 0, len(resp.Files)),
	}
	for _, f := range resp.Files {
		list.Documents = append(list.Documents, DocumentSummary{
			DocumentID:   f.Id,
			Title:        f.Name,
			CreatedTime:  f.CreatedTime,
			ModifiedTime: f.ModifiedTime,
			URL:          DocumentURL(f.Id),
		})
	}
	return list, nil
}

// DeleteDocument permanently deletes a document.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) (*MutationResult, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	if err := c.driveService.Files.Delete(documentID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}

	return &MutationResult{
		Success:    true,
		DocumentID: documentID,
		Message:    "Document deleted successfully",
	}, nil
}

// ExportPDF starts a PDF export of the document. The caller must close the
// returned reader.
func (c *Client) ExportPDF(ctx context.Context, documentID string) (io.ReadCloser, error) {
	if documentID == "" {
		return nil, fmt.Errorf("documentID is required")
	}

	resp, err := c.driveService.Files.Export(documentID, PDFMimeType).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to export document %s: %w", documentID, err)
	}
	return resp.Body, nil
}
