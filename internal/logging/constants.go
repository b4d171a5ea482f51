package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldStore     = "store_id"
	FieldCategory  = "category"
	FieldItem      = "item"
	FieldStatus    = "status"
	FieldReason    = "reason"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldLines     = "lines"
	FieldCreates   = "creates"
	FieldUpdates   = "updates"
	FieldInputFile = "input_file"
	FieldOutput    = "output_file"
	FieldRequestID = "request_id"
)
