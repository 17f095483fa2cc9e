package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldAccountID   = "account_id"
	FieldCategoryID  = "category_id"
	FieldTransferID  = "transfer_id"
	FieldTxID        = "transaction_id"
	FieldAmount      = "amount"
	FieldFxRate      = "fx_rate"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldCacheKey    = "cache_key"
	FieldEventKind   = "event_kind"
	FieldRowCount    = "row_count"
	FieldDestination = "destination"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentLedger = "ledger"
	ComponentCache  = "cache"
	ComponentEvents = "events"
	ComponentMirror = "mirror"
	ComponentWorker = "worker"
	ComponentExport = "export"
	ComponentCLI    = "cli"
)

// Operations defines standard operation names
const (
	OpLogin      = "login"
	OpRegister   = "register"
	OpCreate     = "create"
	OpUpdate     = "update"
	OpList       = "list"
	OpGet        = "get"
	OpVoid       = "void"
	OpClose      = "close"
	OpDeactivate = "deactivate"
	OpMerge      = "merge"
	OpRefresh    = "refresh"
	OpExport     = "export"
	OpShutdown   = "shutdown"
	OpStartup    = "startup"
)
