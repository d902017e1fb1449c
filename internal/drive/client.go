package drive

import (
	"context"
	"fmt"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// Defaults applied when callers leave options unset.
const (
	DefaultListMaxResults    = 50
	DefaultCommentMaxResults = 100
	DefaultOrderBy           = "modifiedTime desc"

	defaultFileFields = "id,name,mimeType,createdTime,modifiedTime,size,webViewLink,parents,permissions,owners"
	mutationFields    = "id,name,mimeType,webViewLink,parents"
)

// Client wraps the Google Drive API service
type Client struct {
	service *drive.Service
}

// NewClient returns a client using an already authenticated Drive service.
func NewClient(service *drive.Service) *Client {
	return &Client{service: service}
}

// ListFiles lists files that are not in the trash.
func (c *Client) ListFiles(ctx context.Context, options ListOptions) (*FileList, error) {
	maxResults := options.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultListMaxResults
	}
	orderBy := options.OrderBy
	if orderBy == "" {
		orderBy = DefaultOrderBy
	}

	fileList, err := c.service.Files.List().
		Context(ctx).
		Q(buildListFilesQuery(options.MimeType, options.Query)).
		Spaces("drive").
		Fields("files(id, name, mimeType, createdTime, modifiedTime, size, webViewLink, parents)").
		PageSize(int64(maxResults)).
		OrderBy(orderBy).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	result := &FileList{
		TotalFiles: len(fileList.Files),
		Files:      make([]FileSummary, 0, len(fileList.Files)),
	}
	for _, f := range fileList.Files {
		result.Files = append(result.Files, convertToFileSummary(f))
	}
	return result, nil
}

// GetFile retrieves metadata for a file. fields overrides the default field mask.
func (c *Client) GetFile(ctx context.Context, fileID, fields string) (*FileDetails, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if fields == "" {
		fields = defaultFileFields
	}

	f, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(googleapi.Field(fields)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	details := &FileDetails{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		Size:         f.Size,
		WebViewLink:  f.WebViewLink,
		Parents:      f.Parents,
	}
	for _, p := range f.Permissions {
		details.Permissions = append(details.Permissions, convertToPermission(p))
	}
	for _, o := range f.Owners {
		details.Owners = append(details.Owners, *convertToUser(o))
	}
	return details, nil
}

// CreateFile creates a file, uploading Content when it is set.
func (c *Client) CreateFile(ctx context.Context, options CreateOptions) (*FileResult, error) {
	if options.Name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if options.MimeType == "" {
		return nil, fmt.Errorf("mimeType is required")
	}

	file := &drive.File{
		Name:    options.Name,
		Parents: options.Parents,
	}
	if options.Content == "" {
		file.MimeType = options.MimeType
	}

	call := c.service.Files.Create(file).Context(ctx).Fields(mutationFields)
	if options.Content != "" {
		call = call.Media(strings.NewReader(options.Content), googleapi.ContentType(options.MimeType))
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return convertToFileResult(created, "File created successfully"), nil
}

// UpdateFile renames a file, replaces its content or changes its parents.
func (c *Client) UpdateFile(ctx context.Context, fileID string, options UpdateOptions) (*FileResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	update := &drive.File{Name: options.Name}
	call := c.service.Files.Update(fileID, update).Context(ctx).Fields(mutationFields)

	if len(options.AddParents) > 0 {
		call = call.AddParents(strings.Join(options.AddParents, ","))
	}
	if len(options.RemoveParents) > 0 {
		call = call.RemoveParents(strings.Join(options.RemoveParents, ","))
	}
	if options.Content != "" {
		call = call.Media(strings.NewReader(options.Content), googleapi.ContentType("text/plain"))
	}

	updated, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update file %s: %w", fileID, err)
	}
	return convertToFileResult(updated, "File updated successfully"), nil
}

// DeleteFile permanently deletes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) (*DeleteResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return &DeleteResult{FileID: fileID, Message: "File deleted successfully"}, nil
}

// CopyFile copies a file, optionally renaming it or placing it in other folders.
func (c *Client) CopyFile(ctx context.Context, fileID string, options CopyOptions) (*FileResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	copied, err := c.service.Files.Copy(fileID, &drive.File{Name: options.Name, Parents: options.Parents}).
		Context(ctx).
		Fields(mutationFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to copy file %s: %w", fileID, err)
	}
	return convertToFileResult(copied, "File copied successfully"), nil
}

// MoveFile adds and removes parent folders of a file.
func (c *Client) MoveFile(ctx context.Context, fileID string, addParents, removeParents []string) (*FileResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	moved, err := c.service.Files.Update(fileID, &drive.File{}).
		Context(ctx).
		AddParents(strings.Join(addParents, ",")).
		RemoveParents(strings.Join(removeParents, ",")).
		Fields("id,name,parents").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move file %s: %w", fileID, err)
	}
	return convertToFileResult(moved, "File moved successfully"), nil
}

// ListPermissions lists all permissions for a file
func (c *Client) ListPermissions(ctx context.Context, fileID string) (*PermissionList, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	permList, err := c.service.Permissions.List(fileID).
		Context(ctx).
		Fields("permissions(id, type, role, emailAddress, domain, displayName)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	result := &PermissionList{Permissions: make([]Permission, 0, len(permList.Permissions))}
	for _, p := range permList.Permissions {
		result.Permissions = append(result.Permissions, convertToPermission(p))
	}
	return result, nil
}

// CreatePermission shares a file. The email address is only sent for user
// and group grantees.
func (c *Client) CreatePermission(ctx context.Context, fileID, emailAddress, role, granteeType string) (*PermissionResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if granteeType == "" {
		return nil, fmt.Errorf("permission type is required")
	}
	if role == "" {
		return nil, fmt.Errorf("permission role is required")
	}

	permission := &drive.Permission{Type: granteeType, Role: role}
	if emailAddress != "" && (granteeType == "user" || granteeType == "group") {
		permission.EmailAddress = emailAddress
	}

	created, err := c.service.Permissions.Create(fileID, permission).
		Context(ctx).
		Fields("id, type, role, emailAddress").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}
	return &PermissionResult{Permission: convertToPermission(created), Message: "Permission created successfully"}, nil
}

// DeletePermission removes a permission from a file
func (c *Client) DeletePermission(ctx context.Context, fileID, permissionID string) (*DeleteResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if permissionID == "" {
		return nil, fmt.Errorf("permissionID is required")
	}

	if err := c.service.Permissions.Delete(fileID, permissionID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to delete permission: %w", err)
	}
	return &DeleteResult{FileID: fileID, PermissionID: permissionID, Message: "Permission deleted successfully"}, nil
}

// ListRevisions lists the stored revisions of a file.
func (c *Client) ListRevisions(ctx context.Context, fileID string) (*RevisionList, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	revList, err := c.service.Revisions.List(fileID).
		Context(ctx).
		Fields("revisions(id,modifiedTime,size,keepForever,published,exportLinks)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}

	result := &RevisionList{Revisions: make([]Revision, 0, len(revList.Revisions))}
	for _, r := range revList.Revisions {
		result.Revisions = append(result.Revisions, convertToRevision(r))
	}
	return result, nil
}

// GetRevision retrieves one revision of a file.
func (c *Client) GetRevision(ctx context.Context, fileID, revisionID string) (*Revision, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if revisionID == "" {
		return nil, fmt.Errorf("revisionID is required")
	}

	r, err := c.service.Revisions.Get(fileID, revisionID).
		Context(ctx).
		Fields("id,modifiedTime,size,keepForever,published,exportLinks").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get revision %s: %w", revisionID, err)
	}
	rev := convertToRevision(r)
	return &rev, nil
}

// DeleteRevision deletes one revision of a file.
func (c *Client) DeleteRevision(ctx context.Context, fileID, revisionID string) (*DeleteResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if revisionID == "" {
		return nil, fmt.Errorf("revisionID is required")
	}

	if err := c.service.Revisions.Delete(fileID, revisionID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to delete revision %s: %w", revisionID, err)
	}
	return &DeleteResult{FileID: fileID, RevisionID: revisionID, Message: "Revision deleted successfully"}, nil
}

// ListComments lists comments on a file.
func (c *Client) ListComments(ctx context.Context, fileID string, maxResults int) (*CommentList, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if maxResults <= 0 {
		maxResults = DefaultCommentMaxResults
	}

	commentList, err := c.service.Comments.List(fileID).
		Context(ctx).
		PageSize(int64(maxResults)).
		Fields("comments(id,content,createdTime,modifiedTime,author,quotedFileContent)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	result := &CommentList{Comments: make([]Comment, 0, len(commentList.Comments))}
	for _, cm := range commentList.Comments {
		result.Comments = append(result.Comments, convertToComment(cm))
	}
	return result, nil
}

// CreateComment adds a comment to a file, optionally anchored to quoted text.
func (c *Client) CreateComment(ctx context.Context, fileID, content, quotedFileContent string) (*CommentResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}

	comment := &drive.Comment{Content: content}
	if quotedFileContent != "" {
		comment.QuotedFileContent = &drive.CommentQuotedFileContent{Value: quotedFileContent}
	}

	created, err := c.service.Comments.Create(fileID, comment).
		Context(ctx).
		Fields("id,content,createdTime,author").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &CommentResult{Comment: convertToComment(created), Message: "Comment created successfully"}, nil
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, fileID, commentID string) (*DeleteResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if commentID == "" {
		return nil, fmt.Errorf("commentID is required")
	}

	if err := c.service.Comments.Delete(fileID, commentID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to delete comment %s: %w", commentID, err)
	}
	return &DeleteResult{FileID: fileID, CommentID: commentID, Message: "Comment deleted successfully"}, nil
}

// ListReplies lists the replies to a comment.
func (c *Client) ListReplies(ctx context.Context, fileID, commentID string) (*ReplyList, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if commentID == "" {
		return nil, fmt.Errorf("commentID is required")
	}

	replyList, err := c.service.Replies.List(fileID, commentID).
		Context(ctx).
		Fields("replies(id,content,createdTime,modifiedTime,author)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	result := &ReplyList{Replies: make([]Reply, 0, len(replyList.Replies))}
	for _, r := range replyList.Replies {
		result.Replies = append(result.Replies, convertToReply(r))
	}
	return result, nil
}

// CreateReply replies to a comment.
func (c *Client) CreateReply(ctx context.Context, fileID, commentID, content string) (*ReplyResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if commentID == "" {
		return nil, fmt.Errorf("commentID is required")
	}
	if content == "" {
		return nil, fmt.Errorf("reply content is required")
	}

	created, err := c.service.Replies.Create(fileID, commentID, &drive.Reply{Content: content}).
		Context(ctx).
		Fields("id,content,createdTime,author").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}
	return &ReplyResult{Reply: convertToReply(created), Message: "Reply created successfully"}, nil
}

// DeleteReply deletes a reply.
func (c *Client) DeleteReply(ctx context.Context, fileID, commentID, replyID string) (*DeleteResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if commentID == "" {
		return nil, fmt.Errorf("commentID is required")
	}
	if replyID == "" {
		return nil, fmt.Errorf("replyID is required")
	}

	if err := c.service.Replies.Delete(fileID, commentID, replyID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to delete reply %s: %w", replyID, err)
	}
	return &DeleteResult{FileID: fileID, CommentID: commentID, ReplyID: replyID, Message: "Reply deleted successfully"}, nil
}

// buildListFilesQuery builds the Drive search expression for ListFiles.
// Trashed files are always excluded.
func buildListFilesQuery(mimeType, nameContains string) string {
	q := "trashed=false"
	if mimeType != "" {
		q += " and mimeType='" + escapeQueryValue(mimeType) + "'"
	}
	if nameContains != "" {
		q += " and name contains '" + escapeQueryValue(nameContains) + "'"
	}
	return q
}

// escapeQueryValue escapes a value for use inside a single-quoted Drive
// query string literal.
func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func convertToFileSummary(f *drive.File) FileSummary {
	return FileSummary{
		ID:            f.Id,
		Name:          f.Name,
		MimeType:      f.MimeType,
		CreatedTime:   f.CreatedTime,
		ModifiedTime:  f.ModifiedTime,
		Size:          f.Size,
		WebViewLink:   f.WebViewLink,
		Parents:       f.Parents,
		IsGoogleDoc:   f.MimeType == DocumentMimeType,
		IsGoogleSheet: f.MimeType == SpreadsheetMimeType,
		IsGoogleSlide: f.MimeType == PresentationMimeType,
		IsFolder:      f.MimeType == FolderMimeType,
	}
}

func convertToFileResult(f *drive.File, message string) *FileResult {
	return &FileResult{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		WebViewLink: f.WebViewLink,
		Parents:     f.Parents,
		Message:     message,
	}
}

func convertToUser(u *drive.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		DisplayName:  u.DisplayName,
		EmailAddress: u.EmailAddress,
		PhotoLink:    u.PhotoLink,
	}
}

// convertToPermission converts a Drive API Permission to our Permission type
func convertToPermission(p *drive.Permission) Permission {
	return Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		Domain:       p.Domain,
		DisplayName:  p.DisplayName,
	}
}

func convertToRevision(r *drive.Revision) Revision {
	return Revision{
		ID:           r.Id,
		ModifiedTime: r.ModifiedTime,
		Size:         r.Size,
		KeepForever:  r.KeepForever,
		Published:    r.Published,
		ExportLinks:  r.ExportLinks,
	}
}

func convertToComment(c *drive.Comment) Comment {
	comment := Comment{
		ID:           c.Id,
		Content:      c.Content,
		CreatedTime:  c.CreatedTime,
		ModifiedTime: c.ModifiedTime,
		Author:       convertToUser(c.Author),
	}
	if c.QuotedFileContent != nil {
		comment.QuotedFileContent = &QuotedContent{
			MimeType: c.QuotedFileContent.MimeType,
			Value:    c.QuotedFileContent.Value,
		}
	}
	return comment
}

func convertToReply(r *drive.Reply) Reply {
	return Reply{
		ID:           r.Id,
		Content:      r.Content,
		CreatedTime:  r.CreatedTime,
		ModifiedTime: r.ModifiedTime,
		Author:       convertToUser(r.Author),
	}
}
