package tools

import (
	"context"

	"github.com/teemow/docsgate/internal/docs"
	"github.com/teemow/docsgate/internal/drive"
)

// Backend is everything an operation can ask of a caller's Google account.
// Implementations are bound to exactly one grant.
type Backend interface {
	// Documents
	CreateDocument(ctx context.Context, title string) (*docs.Document, error)
	GetDocument(ctx context.Context, documentID string) (*docs.DocumentContent, error)
	AppendText(ctx context.Context, documentID, text string) (*docs.MutationResult, error)
	ReplaceText(ctx context.Context, documentID, findText, replaceWithText string) (*docs.MutationResult, error)
	ListDocuments(ctx context.Context, maxResults int) (*docs.DocumentList, error)
	DeleteDocument(ctx context.Context, documentID string) (*docs.MutationResult, error)
	ExportPDF(ctx context.Context, documentID, outputPath string) (*docs.PDFExport, error)

	// Files
	ListFiles(ctx context.Context, options drive.ListOptions) (*drive.FileList, error)
	GetFile(ctx context.Context, fileID, fields string) (*drive.FileDetails, error)
	CreateFile(ctx context.Context, options drive.CreateOptions) (*drive.FileResult, error)
	UpdateFile(ctx context.Context, fileID string, options drive.UpdateOptions) (*drive.FileResult, error)
	DeleteFile(ctx context.Context, fileID string) (*drive.DeleteResult, error)
	CopyFile(ctx context.Context, fileID string, options drive.CopyOptions) (*drive.FileResult, error)
	MoveFile(ctx context.Context, fileID string, addParents, removeParents []string) (*drive.FileResult, error)

	// Permissions
	ListPermissions(ctx context.Context, fileID string) (*drive.PermissionList, error)
	CreatePermission(ctx context.Context, fileID, emailAddress, role, granteeType string) (*drive.PermissionResult, error)
	DeletePermission(ctx context.Context, fileID, permissionID string) (*drive.DeleteResult, error)

	// Revisions
	ListRevisions(ctx context.Context, fileID string) (*drive.RevisionList, error)
	GetRevision(ctx context.Context, fileID, revisionID string) (*drive.Revision, error)
	DeleteRevision(ctx context.Context, fileID, revisionID string) (*drive.DeleteResult, error)

	// Comments and replies
	ListComments(ctx context.Context, fileID string, maxResults int) (*drive.CommentList, error)
	CreateComment(ctx context.Context, fileID, content, quotedFileContent string) (*drive.CommentResult, error)
	DeleteComment(ctx context.Context, fileID, commentID string) (*drive.DeleteResult, error)
	ListReplies(ctx context.Context, fileID, commentID string) (*drive.ReplyList, error)
	CreateReply(ctx context.Context, fileID, commentID, content string) (*drive.ReplyResult, error)
	DeleteReply(ctx context.Context, fileID, commentID, replyID string) (*drive.DeleteResult, error)
}
