package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/tools"
)

type revisionArgs struct {
	FileID     string `json:"fileId" validate:"required"`
	RevisionID string `json:"revisionId" validate:"required"`
}

func revisionOperations() []tools.Operation {
	return []tools.Operation{
		tools.NewOperation(
			mcp.NewTool("drive_list_revisions",
				mcp.WithDescription("List file revisions/versions"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args fileArgs) (any, error) {
				return b.ListRevisions(ctx, args.FileID)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_get_revision",
				mcp.WithDescription("Get specific file revision"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("revisionId", mcp.Required(), mcp.Description("Revision ID")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args revisionArgs) (any, error) {
				return b.GetRevision(ctx, args.FileID, args.RevisionID)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_delete_revision",
				mcp.WithDescription("Delete a file revision"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("revisionId", mcp.Required(), mcp.Description("Revision ID to delete")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args revisionArgs) (any, error) {
				return b.DeleteRevision(ctx, args.FileID, args.RevisionID)
			},
		),
	}
}
