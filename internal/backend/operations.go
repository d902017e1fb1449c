package backend

import (
	"context"

	"github.com/teemow/docsgate/internal/docs"
	"github.com/teemow/docsgate/internal/drive"
	"github.com/teemow/docsgate/internal/instrumentation"
)

const (
	svcDocs  = instrumentation.ServiceDocs
	svcDrive = instrumentation.ServiceDrive

	resDocument   = "document"
	resFile       = "file"
	resPermission = "permission"
	resRevision   = "revision"
	resComment    = "comment"
	resReply      = "reply"
)

// Documents

func (a *Adapter) CreateDocument(ctx context.Context, title string) (*docs.Document, error) {
	return call(ctx, a, "docs_create_document", svcDocs, resDocument, "", func(ctx context.Context) (*docs.Document, error) {
		return a.docs.CreateDocument(ctx, title)
	})
}

func (a *Adapter) GetDocument(ctx context.Context, documentID string) (*docs.DocumentContent, error) {
	return call(ctx, a, "docs_get_document", svcDocs, resDocument, documentID, func(ctx context.Context) (*docs.DocumentContent, error) {
		return a.docs.GetDocument(ctx, documentID)
	})
}

func (a *Adapter) AppendText(ctx context.Context, documentID, text string) (*docs.MutationResult, error) {
	return call(ctx, a, "docs_append_text", svcDocs, resDocument, documentID, func(ctx context.Context) (*docs.MutationResult, error) {
		return a.docs.AppendText(ctx, documentID, text)
	})
}

func (a *Adapter) ReplaceText(ctx context.Context, documentID, findText, replaceWithText string) (*docs.MutationResult, error) {
	return call(ctx, a, "docs_replace_text", svcDocs, resDocument, documentID, func(ctx context.Context) (*docs.MutationResult, error) {
		return a.docs.ReplaceText(ctx, documentID, findText, replaceWithText)
	})
}

func (a *Adapter) ListDocuments(ctx context.Context, maxResults int) (*docs.DocumentList, error) {
	return call(ctx, a, "docs_list_documents", svcDrive, resDocument, "", func(ctx context.Context) (*docs.DocumentList, error) {
		return a.docs.ListDocuments(ctx, maxResults)
	})
}

func (a *Adapter) DeleteDocument(ctx context.Context, documentID string) (*docs.MutationResult, error) {
	return call(ctx, a, "docs_delete_document", svcDrive, resDocument, documentID, func(ctx context.Context) (*docs.MutationResult, error) {
		return a.docs.DeleteDocument(ctx, documentID)
	})
}

// ExportPDF downloads the document as PDF and stores it according to the
// adapter's ExportPolicy.
func (a *Adapter) ExportPDF(ctx context.Context, documentID, outputPath string) (*docs.PDFExport, error) {
	return call(ctx, a, "docs_export_pdf", svcDrive, resDocument, documentID, func(ctx context.Context) (*docs.PDFExport, error) {
		body, err := a.docs.ExportPDF(ctx, documentID)
		if err != nil {
			return nil, err
		}
		defer body.Close()
		return a.export.store(documentID, outputPath, body)
	})
}

// Files

func (a *Adapter) ListFiles(ctx context.Context, options drive.ListOptions) (*drive.FileList, error) {
	return call(ctx, a, "drive_list_files", svcDrive, resFile, "", func(ctx context.Context) (*drive.FileList, error) {
		return a.drive.ListFiles(ctx, options)
	})
}

func (a *Adapter) GetFile(ctx context.Context, fileID, fields string) (*drive.FileDetails, error) {
	return call(ctx, a, "drive_get_file", svcDrive, resFile, fileID, func(ctx context.Context) (*drive.FileDetails, error) {
		return a.drive.GetFile(ctx, fileID, fields)
	})
}

func (a *Adapter) CreateFile(ctx context.Context, options drive.CreateOptions) (*drive.FileResult, error) {
	return call(ctx, a, "drive_create_file", svcDrive, resFile, "", func(ctx context.Context) (*drive.FileResult, error) {
		return a.drive.CreateFile(ctx, options)
	})
}

func (a *Adapter) UpdateFile(ctx context.Context, fileID string, options drive.UpdateOptions) (*drive.FileResult, error) {
	return call(ctx, a, "drive_update_file", svcDrive, resFile, fileID, func(ctx context.Context) (*drive.FileResult, error) {
		return a.drive.UpdateFile(ctx, fileID, options)
	})
}

func (a *Adapter) DeleteFile(ctx context.Context, fileID string) (*drive.DeleteResult, error) {
	return call(ctx, a, "drive_delete_file", svcDrive, resFile, fileID, func(ctx context.Context) (*drive.DeleteResult, error) {
		return a.drive.DeleteFile(ctx, fileID)
	})
}

func (a *Adapter) CopyFile(ctx context.Context, fileID string, options drive.CopyOptions) (*drive.FileResult, error) {
	return call(ctx, a, "drive_copy_file", svcDrive, resFile, fileID, func(ctx context.Context) (*drive.FileResult, error) {
		return a.drive.CopyFile(ctx, fileID, options)
	})
}

func (a *Adapter) MoveFile(ctx context.Context, fileID string, addParents, removeParents []string) (*drive.FileResult, error) {
	return call(ctx, a, "drive_move_file", svcDrive, resFile, fileID, func(ctx context.Context) (*drive.FileResult, error) {
		return a.drive.MoveFile(ctx, fileID, addParents, removeParents)
	})
}

// Permissions

func (a *Adapter) ListPermissions(ctx context.Context, fileID string) (*drive.PermissionList, error) {
	return call(ctx, a, "drive_list_permissions", svcDrive, resPermission, fileID, func(ctx context.Context) (*drive.PermissionList, error) {
		return a.drive.ListPermissions(ctx, fileID)
	})
}

func (a *Adapter) CreatePermission(ctx context.Context, fileID, emailAddress, role, granteeType string) (*drive.PermissionResult, error) {
	return call(ctx, a, "drive_create_permission", svcDrive, resPermission, fileID, func(ctx context.Context) (*drive.PermissionResult, error) {
		return a.drive.CreatePermission(ctx, fileID, emailAddress, role, granteeType)
	})
}

func (a *Adapter) DeletePermission(ctx context.Context, fileID, permissionID string) (*drive.DeleteResult, error) {
	return call(ctx, a, "drive_delete_permission", svcDrive, resPermission, permissionID, func(ctx context.Context) (*drive.DeleteResult, error) {
		return a.drive.DeletePermission(ctx, fileID, permissionID)
	})
}

// Revisions

func (a *Adapter) ListRevisions(ctx context.Context, fileID string) (*drive.RevisionList, error) {
	return call(ctx, a, "drive_list_revisions", svcDrive, resRevision, fileID, func(ctx context.Context) (*drive.RevisionList, error) {
		return a.drive.ListRevisions(ctx, fileID)
	})
}

func (a *Adapter) GetRevision(ctx context.Context, fileID, revisionID string) (*drive.Revision, error) {
	return call(ctx, a, "drive_get_revision", svcDrive, resRevision, revisionID, func(ctx context.Context) (*drive.Revision, error) {
		return a.drive.GetRevision(ctx, fileID, revisionID)
	})
}

func (a *Adapter) DeleteRevision(ctx context.Context, fileID, revisionID string) (*drive.DeleteResult, error) {
	return call(ctx, a, "drive_delete_revision", svcDrive, resRevision, revisionID, func(ctx context.Context) (*drive.DeleteResult, error) {
		return a.drive.DeleteRevision(ctx, fileID, revisionID)
	})
}

// Comments and replies

func (a *Adapter) ListComments(ctx context.Context, fileID string, maxResults int) (*drive.CommentList, error) {
	return call(ctx, a, "drive_list_comments", svcDrive, resComment, fileID, func(ctx context.Context) (*drive.CommentList, error) {
		return a.drive.ListComments(ctx, fileID, maxResults)
	})
}

func (a *Adapter) CreateComment(ctx context.Context, fileID, content, quotedFileContent string) (*drive.CommentResult, error) {
	return call(ctx, a, "drive_create_comment", svcDrive, resComment, fileID, func(ctx context.Context) (*drive.CommentResult, error) {
		return a.drive.CreateComment(ctx, fileID, content, quotedFileContent)
	})
}

func (a *Adapter) DeleteComment(ctx context.Context, fileID, commentID string) (*drive.DeleteResult, error) {
	return call(ctx, a, "drive_delete_comment", svcDrive, resComment, commentID, func(ctx context.Context) (*drive.DeleteResult, error) {
		return a.drive.DeleteComment(ctx, fileID, commentID)
	})
}

func (a *Adapter) ListReplies(ctx context.Context, fileID, commentID string) (*drive.ReplyList, error) {
	return call(ctx, a, "drive_list_replies", svcDrive, resReply, commentID, func(ctx context.Context) (*drive.ReplyList, error) {
		return a.drive.ListReplies(ctx, fileID, commentID)
	})
}

func (a *Adapter) CreateReply(ctx context.Context, fileID, commentID, content string) (*drive.ReplyResult, error) {
	return call(ctx, a, "drive_create_reply", svcDrive, resReply, commentID, func(ctx context.Context) (*drive.ReplyResult, error) {
		return a.drive.CreateReply(ctx, fileID, commentID, content)
	})
}

func (a *Adapter) DeleteReply(ctx context.Context, fileID, commentID, replyID string) (*drive.DeleteResult, error) {
	return call(ctx, a, "drive_delete_reply", svcDrive, resReply, replyID, func(ctx context.Context) (*drive.DeleteResult, error) {
		return a.drive.DeleteReply(ctx, fileID, commentID, replyID)
	})
}
