package docs_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsgate/internal/docs"
	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/tools"
)

type createDocumentArgs struct {
	Title string `json:"title" validate:"required"`
}

type documentArgs struct {
	DocumentID string `json:"documentId" validate:"required"`
}

type appendTextArgs struct {
	DocumentID string `json:"documentId" validate:"required"`
	Text       string `json:"text" validate:"required"`
}

type replaceTextArgs struct {
	DocumentID      string `json:"documentId" validate:"required"`
	FindText        string `json:"findText" validate:"required"`
	ReplaceWithText string `json:"replaceWithText"`
}

type listDocumentsArgs struct {
	MaxResults int `json:"maxResults" validate:"gte=0"`
}

type exportPDFArgs struct {
	DocumentID string `json:"documentId" validate:"required"`
	OutputPath string `json:"outputPath"`
}

const documentIDDescription = "Google Doc ID"

// Operations returns the Google Docs operations in catalog order.
func Operations() []tools.Operation {
	return []tools.Operation{
		tools.NewOperation(
			mcp.NewTool("docs_create_document",
				mcp.WithDescription("Create a new Google Doc"),
				mcp.WithString("title", mcp.Required(), mcp.Description("Document title")),
			),
			instrumentation.ServiceDocs,
			func(ctx context.Context, b tools.Backend, args createDocumentArgs) (any, error) {
				return b.CreateDocument(ctx, args.Title)
			},
		),
		tools.NewOperation(
			mcp.NewTool("docs_get_document",
				mcp.WithDescription("Get the content of a Google Doc"),
				mcp.WithString("documentId", mcp.Required(), mcp.Description(documentIDDescription)),
			),
			instrumentation.ServiceDocs,
			func(ctx context.Context, b tools.Backend, args documentArgs) (any, error) {
				return b.GetDocument(ctx, args.DocumentID)
			},
		),
		tools.NewOperation(
			mcp.NewTool("docs_append_text",
				mcp.WithDescription("Append text to a Google Doc"),
				mcp.WithString("documentId", mcp.Required(), mcp.Description(documentIDDescription)),
				mcp.WithString("text", mcp.Required(), mcp.Description("Text to append")),
			),
			instrumentation.ServiceDocs,
			func(ctx context.Context, b tools.Backend, args appendTextArgs) (any, error) {
				return b.AppendText(ctx, args.DocumentID, args.Text)
			},
		),
		tools.NewOperation(
			mcp.NewTool("docs_replace_text",
				mcp.WithDescription("Find and replace text in a Google Doc"),
				mcp.WithString("documentId", mcp.Required(), mcp.Description(documentIDDescription)),
				mcp.WithString("findText", mcp.Required(), mcp.Description("Text to find")),
				mcp.WithString("replaceWithText", mcp.Required(), mcp.Description("Text to replace with")),
			),
			instrumentation.ServiceDocs,
			func(ctx context.Context, b tools.Backend, args replaceTextArgs) (any, error) {
				return b.ReplaceText(ctx, args.DocumentID, args.FindText, args.ReplaceWithText)
			},
		),
		tools.NewOperation(
			mcp.NewTool("docs_list_documents",
				mcp.WithDescription("List your Google Docs"),
				mcp.WithNumber("maxResults",
					mcp.Description("Maximum number of documents to return (default: 10)"),
					mcp.DefaultNumber(docs.DefaultListMaxResults),
				),
			),
			instrumentation.ServiceDocs,
			func(ctx context.Context, b tools.Backend, args listDocumentsArgs) (any, error) {
				return b.ListDocuments(ctx, args.MaxResults)
			},
		),
		tools.NewOperation(
			mcp.NewTool("docs_delete_document",
				mcp.WithDescription("Delete a Google Doc"),
				mcp.WithString("documentId", mcp.Required(), mcp.Description("Google Doc ID to delete")),
			),
			instrumentation.ServiceDocs,
			func(ctx context.Context, b tools.Backend, args documentArgs) (any, error) {
				return b.DeleteDocument(ctx, args.DocumentID)
			},
		),
		tools.NewOperation(
			mcp.NewTool("docs_export_pdf",
				mcp.WithDescription("Export a Google Doc as PDF. The PDF is saved under the server's export directory "+
					"when one is configured, otherwise it is returned base64 encoded"),
				mcp.WithString("documentId", mcp.Required(), mcp.Description(documentIDDescription)),
				mcp.WithString("outputPath", mcp.Description("Path to save the PDF file")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args exportPDFArgs) (any, error) {
				return b.ExportPDF(ctx, args.DocumentID, args.OutputPath)
			},
		),
	}
}
