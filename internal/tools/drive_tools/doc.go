// Package drive_tools defines the Google Drive operations of the catalog:
// files, permissions, revisions, comments and replies.
package drive_tools
