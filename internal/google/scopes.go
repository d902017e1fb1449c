package google

import (
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
)

// DefaultOAuthScopes are the scopes requested on every authorization.
//
// The scopes provide access to:
//   - Google Docs: read and write
//   - Google Drive: full access (files, permissions, revisions, comments)
//   - Basic profile for the consent screen
var DefaultOAuthScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",

	docs.DocumentsScope,
	drive.DriveScope,
}
