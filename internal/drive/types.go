package drive

// Google Workspace MIME types recognized in file listings.
const (
	DocumentMimeType     = "application/vnd.google-apps.document"
	SpreadsheetMimeType  = "application/vnd.google-apps.spreadsheet"
	PresentationMimeType = "application/vnd.google-apps.presentation"
	FolderMimeType       = "application/vnd.google-apps.folder"
)

// User represents a Google Drive user (owner, comment author, ...)
type User struct {
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	PhotoLink    string `json:"photoLink,omitempty"`
}

// FileSummary is one entry of a file listing.
type FileSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mimeType"`
	CreatedTime  string   `json:"createdTime,omitempty"`
	ModifiedTime string   `json:"modifiedTime,omitempty"`
	Size         int64    `json:"size,omitempty"`
	WebViewLink  string   `json:"webViewLink,omitempty"`
	Parents      []string `json:"parents,omitempty"`

	IsGoogleDoc   bool `json:"isGoogleDoc"`
	IsGoogleSheet bool `json:"isGoogleSheet"`
	IsGoogleSlide bool `json:"isGoogleSlide"`
	IsFolder      bool `json:"isFolder"`
}

// FileList is the result of ListFiles.
type FileList struct {
	TotalFiles int           `json:"totalFiles"`
	Files      []FileSummary `json:"files"`
}

// FileDetails is the result of GetFile.
type FileDetails struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	MimeType     string       `json:"mimeType"`
	CreatedTime  string       `json:"createdTime,omitempty"`
	ModifiedTime string       `json:"modifiedTime,omitempty"`
	Size         int64        `json:"size,omitempty"`
	WebViewLink  string       `json:"webViewLink,omitempty"`
	Parents      []string     `json:"parents,omitempty"`
	Permissions  []Permission `json:"permissions,omitempty"`
	Owners       []User       `json:"owners,omitempty"`
}

// FileResult is returned by mutations on a file (create, update, copy, move).
type FileResult struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MimeType    string   `json:"mimeType,omitempty"`
	WebViewLink string   `json:"webViewLink,omitempty"`
	Parents     []string `json:"parents,omitempty"`
	Message     string   `json:"message"`
}

// ListOptions filters ListFiles.
type ListOptions struct {
	MaxResults int
	MimeType   string
	// Query matches against the file name ("name contains").
	Query   string
	OrderBy string
}

// CreateOptions describes a new file. Without Content only metadata is
// created, which is how Google Workspace files and folders are made.
type CreateOptions struct {
	Name     string
	MimeType string
	Content  string
	Parents  []string
}

// UpdateOptions describes a file update. Empty fields are left unchanged.
type UpdateOptions struct {
	Name          string
	Content       string
	AddParents    []string
	RemoveParents []string
}

// CopyOptions describes a file copy.
type CopyOptions struct {
	Name    string
	Parents []string
}

// Permission represents access permissions for a file
type Permission struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// PermissionList is the result of ListPermissions.
type PermissionList struct {
	Permissions []Permission `json:"permissions"`
}

// PermissionResult is returned by CreatePermission.
type PermissionResult struct {
	Permission
	Message string `json:"message"`
}

// Revision is a stored revision of a file.
type Revision struct {
	ID           string            `json:"id"`
	ModifiedTime string            `json:"modifiedTime,omitempty"`
	Size         int64             `json:"size,omitempty"`
	KeepForever  bool              `json:"keepForever"`
	Published    bool              `json:"published"`
	ExportLinks  map[string]string `json:"exportLinks,omitempty"`
}

// RevisionList is the result of ListRevisions.
type RevisionList struct {
	Revisions []Revision `json:"revisions"`
}

// QuotedContent is the file excerpt a comment refers to.
type QuotedContent struct {
	MimeType string `json:"mimeType,omitempty"`
	Value    string `json:"value"`
}

// Comment is a comment on a file.
type Comment struct {
	ID                string         `json:"id"`
	Content           string         `json:"content"`
	CreatedTime       string         `json:"createdTime,omitempty"`
	ModifiedTime      string         `json:"modifiedTime,omitempty"`
	Author            *User          `json:"author,omitempty"`
	QuotedFileContent *QuotedContent `json:"quotedFileContent,omitempty"`
}

// CommentList is the result of ListComments.
type CommentList struct {
	Comments []Comment `json:"comments"`
}

// CommentResult is returned by CreateComment.
type CommentResult struct {
	Comment
	Message string `json:"message"`
}

// Reply is a reply to a comment.
type Reply struct {
	ID           string `json:"id"`
	Content      string `json:"content"`
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Author       *User  `json:"author,omitempty"`
}

// ReplyList is the result of ListReplies.
type ReplyList struct {
	Replies []Reply `json:"replies"`
}

// ReplyResult is returned by CreateReply.
type ReplyResult struct {
	Reply
	Message string `json:"message"`
}

// DeleteResult acknowledges a deletion and echoes the identifiers involved.
type DeleteResult struct {
	FileID       string `json:"fileId"`
	PermissionID string `json:"permissionId,omitempty"`
	RevisionID   string `json:"revisionId,omitempty"`
	CommentID    string `json:"commentId,omitempty"`
	ReplyID      string `json:"replyId,omitempty"`
	Message      string `json:"message"`
}
