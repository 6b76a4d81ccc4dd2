package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldRange     = "range"
	FieldCount     = "count"
	FieldPath      = "path"
	FieldVersion   = "version"
)

const (
	ComponentApp     = "app"
	ComponentConfig  = "config"
	ComponentStorage = "storage"
	ComponentTrends  = "trends"
	ComponentCLI     = "cli"
)

const (
	OpCreate  = "create"
	OpList    = "list"
	OpImport  = "import"
	OpFetch   = "fetch"
	OpMigrate = "migrate"
	OpLoad    = "load"
)
