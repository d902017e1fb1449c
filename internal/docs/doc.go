// Package docs wraps the Google Docs API, plus the Drive calls that operate on
// documents (listing, deletion and PDF export).
//
// Results are plain structs shaped for JSON tool payloads. Document bodies are
// flattened into paragraph blocks; no formatting is preserved.
//
// Example usage:
//
//	client := docs.NewClient(docsService, driveService)
//	doc, err := client.CreateDocument(ctx, "Meeting notes")
//	if err != nil {
//	    return err
//	}
//	_, err = client.AppendText(ctx, doc.DocumentID, "Agenda\n")
package docs
