package instrumentation

import "strings"

// Operation kinds used as the "operation" label of Google API metrics.
// Tool names are mapped onto this bounded set so that metric series do not
// grow with the catalog.
const (
	OperationList    = "list"
	OperationGet     = "get"
	OperationCreate  = "create"
	OperationUpdate  = "update"
	OperationDelete  = "delete"
	OperationCopy    = "copy"
	OperationMove    = "move"
	OperationExport  = "export"
	OperationUnknown = "other"
)

var operationVerbs = map[string]string{
	"list":    OperationList,
	"get":     OperationGet,
	"create":  OperationCreate,
	"update":  OperationUpdate,
	"append":  OperationUpdate,
	"replace": OperationUpdate,
	"delete":  OperationDelete,
	"copy":    OperationCopy,
	"move":    OperationMove,
	"export":  OperationExport,
}

// OperationKind derives the operation kind from a tool name of the form
// <service>_<verb>_<object>.
//
// Example:
//
//	OperationKind("drive_list_files")     // "list"
//	OperationKind("docs_append_text")     // "update"
//	OperationKind("something")            // "other"
func OperationKind(toolName string) string {
	parts := strings.SplitN(toolName, "_", 3)
	if len(parts) < 2 {
		return OperationUnknown
	}
	if kind, ok := operationVerbs[parts[1]]; ok {
		return kind
	}
	return OperationUnknown
}
