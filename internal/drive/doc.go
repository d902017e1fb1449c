// Package drive wraps the Google Drive v3 API for file, permission, revision,
// comment and reply management.
//
// A Client is built from an authenticated *drive.Service, so credentials and
// token refresh stay with the caller. Results are plain structs shaped for
// JSON tool payloads; mutating calls carry a human readable message, and
// deletions echo the identifier they removed.
//
// File listings are built from a Drive search query that always excludes
// trashed files. MoveFile takes explicit parent sets to add and remove.
//
// Example usage:
//
//	client := drive.NewClient(driveService)
//	files, err := client.ListFiles(ctx, drive.ListOptions{
//	    MimeType:   drive.DocumentMimeType,
//	    MaxResults: 10,
//	})
//	if err != nil {
//	    return err
//	}
//	_, err = client.CreateComment(ctx, files.Files[0].ID, "Please review", "")
package drive
