package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/tools"
)

type createPermissionArgs struct {
	FileID       string `json:"fileId" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"omitempty,email"`
	Role         string `json:"role" validate:"required,oneof=reader writer commenter owner"`
	Type         string `json:"type" validate:"required,oneof=user group domain anyone"`
}

type permissionArgs struct {
	FileID       string `json:"fileId" validate:"required"`
	PermissionID string `json:"permissionId" validate:"required"`
}

func shareOperations() []tools.Operation {
	return []tools.Operation{
		tools.NewOperation(
			mcp.NewTool("drive_list_permissions",
				mcp.WithDescription("List file permissions"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args fileArgs) (any, error) {
				return b.ListPermissions(ctx, args.FileID)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_create_permission",
				mcp.WithDescription("Share a file with users"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("emailAddress", mcp.Description("Email address to share with")),
				mcp.WithString("role", mcp.Required(),
					mcp.Enum("reader", "writer", "commenter", "owner"),
					mcp.Description("Permission role"),
				),
				mcp.WithString("type", mcp.Required(),
					mcp.Enum("user", "group", "domain", "anyone"),
					mcp.Description("Permission type"),
				),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args createPermissionArgs) (any, error) {
				return b.CreatePermission(ctx, args.FileID, args.EmailAddress, args.Role, args.Type)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_delete_permission",
				mcp.WithDescription("Remove file permissions"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("permissionId", mcp.Required(), mcp.Description("Permission ID to remove")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args permissionArgs) (any, error) {
				return b.DeletePermission(ctx, args.FileID, args.PermissionID)
			},
		),
	}
}
