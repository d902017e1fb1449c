package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsgate/internal/docs"
	"github.com/teemow/docsgate/internal/drive"
)

// stubBackend implements only what a test sets; anything else panics through
// the nil embedded interface.
type stubBackend struct {
	Backend
	createDocument func(ctx context.Context, title string) (*docs.Document, error)
	moveFile       func(ctx context.Context, fileID string, add, remove []string) (*drive.FileResult, error)
}

func (s *stubBackend) CreateDocument(ctx context.Context, title string) (*docs.Document, error) {
	return s.createDocument(ctx, title)
}

func (s *stubBackend) MoveFile(ctx context.Context, fileID string, add, remove []string) (*drive.FileResult, error) {
	return s.moveFile(ctx, fileID, add, remove)
}

type titleArgs struct {
	Title string `json:"title" validate:"required"`
}

type moveArgs struct {
	FileID        string     `json:"fileId" validate:"required"`
	AddParents    StringList `json:"addParents" validate:"required"`
	RemoveParents StringList `json:"removeParents" validate:"required"`
}

type roleArgs struct {
	Role string `json:"role" validate:"required,oneof=reader writer"`
}

func testOperations() []Operation {
	return []Operation{
		NewOperation(mcp.NewTool("create_doc"), "docs",
			func(ctx context.Context, b Backend, args titleArgs) (any, error) {
				return b.CreateDocument(ctx, args.Title)
			}),
		NewOperation(mcp.NewTool("move_file"), "drive",
			func(ctx context.Context, b Backend, args moveArgs) (any, error) {
				return b.MoveFile(ctx, args.FileID, args.AddParents, args.RemoveParents)
			}),
		NewOperation(mcp.NewTool("set_role"), "drive",
			func(ctx context.Context, b Backend, args roleArgs) (any, error) {
				return map[string]string{"role": args.Role}, nil
			}),
		NewOperation(mcp.NewTool("explode"), "drive",
			func(ctx context.Context, b Backend, args struct{}) (any, error) {
				panic("kaboom")
			}),
		NewOperation(mcp.NewTool("fail"), "drive",
			func(ctx context.Context, b Backend, args struct{}) (any, error) {
				return nil, errors.New("File not found: f1.")
			}),
	}
}
