package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/docsgate/internal/drive"
	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/tools"
)

type listCommentsArgs struct {
	FileID     string `json:"fileId" validate:"required"`
	MaxResults int    `json:"maxResults" validate:"gte=0"`
}

type createCommentArgs struct {
	FileID            string `json:"fileId" validate:"required"`
	Content           string `json:"content" validate:"required"`
	QuotedFileContent string `json:"quotedFileContent"`
}

type commentArgs struct {
	FileID    string `json:"fileId" validate:"required"`
	CommentID string `json:"commentId" validate:"required"`
}

type createReplyArgs struct {
	FileID    string `json:"fileId" validate:"required"`
	CommentID string `json:"commentId" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

type replyArgs struct {
	FileID    string `json:"fileId" validate:"required"`
	CommentID string `json:"commentId" validate:"required"`
	ReplyID   string `json:"replyId" validate:"required"`
}

func commentOperations() []tools.Operation {
	return []tools.Operation{
		tools.NewOperation(
			mcp.NewTool("drive_list_comments",
				mcp.WithDescription("List file comments"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithNumber("maxResults",
					mcp.Description("Maximum number of comments (default: 100)"),
					mcp.DefaultNumber(drive.DefaultCommentMaxResults),
				),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args listCommentsArgs) (any, error) {
				return b.ListComments(ctx, args.FileID, args.MaxResults)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_create_comment",
				mcp.WithDescription("Add a comment to a file"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("content", mcp.Required(), mcp.Description("Comment content")),
				mcp.WithString("quotedFileContent", mcp.Description("Quoted text from the file (optional)")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args createCommentArgs) (any, error) {
				return b.CreateComment(ctx, args.FileID, args.Content, args.QuotedFileContent)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_delete_comment",
				mcp.WithDescription("Delete a file comment"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("commentId", mcp.Required(), mcp.Description("Comment ID to delete")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args commentArgs) (any, error) {
				return b.DeleteComment(ctx, args.FileID, args.CommentID)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_list_replies",
				mcp.WithDescription("List replies to a comment"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("commentId", mcp.Required(), mcp.Description("Comment ID")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args commentArgs) (any, error) {
				return b.ListReplies(ctx, args.FileID, args.CommentID)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_create_reply",
				mcp.WithDescription("Reply to a comment"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("commentId", mcp.Required(), mcp.Description("Comment ID to reply to")),
				mcp.WithString("content", mcp.Required(), mcp.Description("Reply content")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args createReplyArgs) (any, error) {
				return b.CreateReply(ctx, args.FileID, args.CommentID, args.Content)
			},
		),
		tools.NewOperation(
			mcp.NewTool("drive_delete_reply",
				mcp.WithDescription("Delete a reply to a comment"),
				mcp.WithString("fileId", mcp.Required(), mcp.Description(fileIDDescription)),
				mcp.WithString("commentId", mcp.Required(), mcp.Description("Comment ID")),
				mcp.WithString("replyId", mcp.Required(), mcp.Description("Reply ID to delete")),
			),
			instrumentation.ServiceDrive,
			func(ctx context.Context, b tools.Backend, args replyArgs) (any, error) {
				return b.DeleteReply(ctx, args.FileID, args.CommentID, args.ReplyID)
			},
		),
	}
}
