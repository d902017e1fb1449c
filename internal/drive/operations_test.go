package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

// newRoutedClient serves a fixed response per Drive route.
func newRoutedClient(t *testing.T, routes map[string]any) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, body := range routes {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			if body == nil {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			writeJSON(t, w, body)
		})
	}
	return newTestClient(t, mux.ServeHTTP)
}

func TestOperations_Messages(t *testing.T) {
	file := map[string]any{"id": "f2", "name": "Copy of notes", "mimeType": "text/plain", "parents": []string{"p1"}}
	c := newRoutedClient(t, map[string]any{
		"GET /files/f1":                            map[string]any{"id": "f1", "name": "notes", "owners": []any{map[string]any{"displayName": "Jane"}}},
		"POST /files":                              file,
		"PATCH /files/f1":                          file,
		"DELETE /files/f1":                         nil,
		"POST /files/f1/copy":                      file,
		"GET /files/f1/permissions":                map[string]any{"permissions": []any{map[string]any{"id": "perm1", "role": "owner", "type": "user"}}},
		"DELETE /files/f1/permissions/perm1":       nil,
		"GET /files/f1/revisions":                  map[string]any{"revisions": []any{map[string]any{"id": "r1", "keepForever": true}}},
		"GET /files/f1/revisions/r1":               map[string]any{"id": "r1", "size": "42"},
		"DELETE /files/f1/revisions/r1":            nil,
		"GET /files/f1/comments":                   map[string]any{"comments": []any{map[string]any{"id": "c1", "content": "hi"}}},
		"POST /files/f1/comments":                  map[string]any{"id": "c1", "content": "hi"},
		"DELETE /files/f1/comments/c1":             nil,
		"GET /files/f1/comments/c1/replies":        map[string]any{"replies": []any{map[string]any{"id": "re1", "content": "ok"}}},
		"POST /files/f1/comments/c1/replies":       map[string]any{"id": "re1", "content": "ok"},
		"DELETE /files/f1/comments/c1/replies/re1": nil,
	})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (any, error)
		want map[string]any
	}{
		{
			name: "get file",
			call: func() (any, error) { return c.GetFile(ctx, "f1", "") },
			want: map[string]any{"id": "f1", "name": "notes"},
		},
		{
			name: "create file",
			call: func() (any, error) {
				return c.CreateFile(ctx, CreateOptions{Name: "notes", MimeType: DocumentMimeType})
			},
			want: map[string]any{"id": "f2", "message": "File created successfully"},
		},
		{
			name: "update file",
			call: func() (any, error) { return c.UpdateFile(ctx, "f1", UpdateOptions{Name: "renamed"}) },
			want: map[string]any{"message": "File updated successfully"},
		},
		{
			name: "delete file",
			call: func() (any, error) { return c.DeleteFile(ctx, "f1") },
			want: map[string]any{"fileId": "f1", "message": "File deleted successfully"},
		},
		{
			name: "copy file",
			call: func() (any, error) { return c.CopyFile(ctx, "f1", CopyOptions{Name: "Copy of notes"}) },
			want: map[string]any{"name": "Copy of notes", "message": "File copied successfully"},
		},
		{
			name: "delete permission",
			call: func() (any, error) { return c.DeletePermission(ctx, "f1", "perm1") },
			want: map[string]any{"permissionId": "perm1", "message": "Permission deleted successfully"},
		},
		{
			name: "get revision",
			call: func() (any, error) { return c.GetRevision(ctx, "f1", "r1") },
			want: map[string]any{"id": "r1", "size": float64(42)},
		},
		{
			name: "delete revision",
			call: func() (any, error) { return c.DeleteRevision(ctx, "f1", "r1") },
			want: map[string]any{"revisionId": "r1", "message": "Revision deleted successfully"},
		},
		{
			name: "create comment",
			call: func() (any, error) { return c.CreateComment(ctx, "f1", "hi", "") },
			want: map[string]any{"id": "c1", "message": "Comment created successfully"},
		},
		{
			name: "delete comment",
			call: func() (any, error) { return c.DeleteComment(ctx, "f1", "c1") },
			want: map[string]any{"commentId": "c1", "message": "Comment deleted successfully"},
		},
		{
			name: "create reply",
			call: func() (any, error) { return c.CreateReply(ctx, "f1", "c1", "ok") },
			want: map[string]any{"id": "re1", "message": "Reply created successfully"},
		},
		{
			name: "delete reply",
			call: func() (any, error) { return c.DeleteReply(ctx, "f1", "c1", "re1") },
			want: map[string]any{"replyId": "re1", "message": "Reply deleted successfully"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.call()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := asMap(t, res)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestOperations_Lists(t *testing.T) {
	c := newRoutedClient(t, map[string]any{
		"GET /files/f1/permissions":         map[string]any{"permissions": []any{map[string]any{"id": "perm1"}, map[string]any{"id": "perm2"}}},
		"GET /files/f1/revisions":           map[string]any{"revisions": []any{map[string]any{"id": "r1"}}},
		"GET /files/f1/comments":            map[string]any{"comments": []any{map[string]any{"id": "c1"}, map[string]any{"id": "c2"}}},
		"GET /files/f1/comments/c1/replies": map[string]any{"replies": []any{}},
	})
	ctx := context.Background()

	perms, err := c.ListPermissions(ctx, "f1")
	if err != nil || len(perms.Permissions) != 2 {
		t.Errorf("ListPermissions = %+v, %v", perms, err)
	}
	revs, err := c.ListRevisions(ctx, "f1")
	if err != nil || len(revs.Revisions) != 1 {
		t.Errorf("ListRevisions = %+v, %v", revs, err)
	}
	comments, err := c.ListComments(ctx, "f1", 0)
	if err != nil || len(comments.Comments) != 2 {
		t.Errorf("ListComments = %+v, %v", comments, err)
	}
	replies, err := c.ListReplies(ctx, "f1", "c1")
	if err != nil || replies.Replies == nil || len(replies.Replies) != 0 {
		t.Errorf("ListReplies = %+v, %v", replies, err)
	}
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}
