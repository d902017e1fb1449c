package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsgate/internal/drive"
	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/tools"
)

type listFilesArgs struct {
	MaxResults int    `json:"maxResults" validate:"gte=0"`
	MimeType   string `json:"mimeType"`
	Query      string `json:"query"`
	OrderBy    string `json:"orderBy"`
}

type fileArgs struct {
	FileID string `json:"fileId" validate:"required"`
}

type getFileArgs struct {
	FileID string `json:"fileId" validate:"required"`
	Fields string `json:"fields"`
}

type createFileArgs struct {
	Name     string           `json:"name" validate:"required"`
	MimeType string           `json:"mimeType" validate:"required"`
	Content  string           `json:"content"`
	Parents  tools.StringList `json:"parents"`
}

type updateFileArgs struct {
	FileID        string           `json:"fileId" validate:"required"`
	Name          string           `json:"name"`
	Content       string           `json:"content"`
	AddParents    tools.StringList `json:"addParents"`
	RemoveParents tools.StringList `json:"removeParents"`
}

type copyFileArgs struct {
	FileID  string           `json:"fileId" validate:"required"`
	Name    string           `json:"name"`
	Parents tools.StringList `json:"parents"`
}

type moveFileArgs struct {
	FileID        string           `json:"fileId" validate:"required"`
	AddParents    tools.StringList `json:"addParents" validate:"required"`
	RemoveParents tools.StringList `json:"removeParents" validate:"required"`
}

func fileOperations() []tools.Operation {
	return []tools.Operation{
		tools.NewOperation(
			mcp.NewTool("drive_list_files",
				mcp.WithDescription("List all files in Google Drive"),
				mcp.WithNumber("maxResults",
					mcp.Description("Maximum number of files to return (default: 50)"),
					mcp.DefaultNumber(drive.DefaultListMaxResults),
				),
				mcp.WithString("mimeType", mcp.Description("Filter by MIME type (optional)")),
				mcp.WithString("query", mcp.Description("Only return files whose name contains this text (optional)")),
				mcp.WithString("orderBy",
					mcp.Description("Order results by field (default: modifiedTime desc)"),
					mcp.DefaultString(drive.DefaultOrderBy),
				),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args listFilesArgs) (any, error) {
				return b.ListFiles(ctx, drive.ListOptions{
					MaxResults: args.MaxResults,
					MimeType:   args.MimeType,
					Query:      args.Query,
					OrderBy:    args.OrderBy,
				})
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_get_file",
				mcp.WithDescription("Get file metadata"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("fields", mcp.Description("Fields to return (optional)")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args getFileArgs) (any, error) {
				return b.GetFile(ctx, args.FileID, args.Fields)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_create_file",
				mcp.WithDescription("Create a new file in Google Drive"),
				mcp.WithString("name", mcp.Required(), mcp.Description("File name")),
				mcp.WithString("mimeType", mcp.Required(), mcp.Description("MIME type of the file")),
				mcp.WithString("content", mcp.Description("File content (optional)")),
				mcp.WithArray("parents", stringItems, mcp.Description("Parent folder IDs (optional)")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args createFileArgs) (any, error) {
				return b.CreateFile(ctx, drive.CreateOptions{
					Name:     args.Name,
					MimeType: args.MimeType,
					Content:  args.Content,
					Parents:  args.Parents,
				})
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_update_file",
				mcp.WithDescription("Update file content or metadata"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("name", mcp.Description("New file name (optional)")),
				mcp.WithString("content", mcp.Description("New file content (optional)")),
				mcp.WithArray("addParents", stringItems, mcp.Description("Add to these folders (optional)")),
				mcp.WithArray("removeParents", stringItems, mcp.Description("Remove from these folders (optional)")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args updateFileArgs) (any, error) {
				return b.UpdateFile(ctx, args.FileID, drive.UpdateOptions{
					Name:          args.Name,
					Content:       args.Content,
					AddParents:    args.AddParents,
					RemoveParents: args.RemoveParents,
				})
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_delete_file",
				mcp.WithDescription("Delete a file from Google Drive"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args fileArgs) (any, error) {
				return b.DeleteFile(ctx, args.FileID)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_copy_file",
				mcp.WithDescription("Copy a file in Google Drive"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description("Source file ID")),
				mcp.WithString("name", mcp.Description("Name for the copied file (optional)")),
				mcp.WithArray("parents", stringItems, mcp.Description("Destination folder IDs (optional)")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args copyFileArgs) (any, error) {
				return b.CopyFile(ctx, args.FileID, drive.CopyOptions{
					Name:    args.Name,
					Parents: args.Parents,
				})
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_move_file",
				mcp.WithDescription("Move a file to different folders"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description("File ID to move")),
				mcp.WithArray("addParents", mcp.Required(), stringItems, mcp.Description("Add to these folders")),
				mcp.WithArray("removeParents", mcp.Required(), stringItems, mcp.Description("Remove from these folders")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args moveFileArgs) (any, error) {
				return b.MoveFile(ctx, args.FileID, args.AddParents, args.RemoveParents)
			},
		),
	}
}
