package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldDate        = "date"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldEntryID     = "entry_id"
	FieldAbsenceType = "absence_type"
	FieldWorkedHours = "worked_hours"
	FieldBackend     = "backend"
	FieldBlobKey     = "blob_key"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldClientIP    = "client_ip"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentBlob    = "blob"
	ComponentTracker = "tracker"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
)

// Standard operation names.
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpUpsert   = "upsert"
	OpReplace  = "replace"
	OpSummary  = "summary"
	OpPublish  = "publish"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
