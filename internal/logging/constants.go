package logging

// Standardized field names for structured logging. Using these constants
// keeps log output consistent and easy to filter.
const (
	FieldSource    = "source"
	FieldSender    = "sender"
	FieldRule      = "rule"
	FieldReason    = "reason"
	FieldMerchant  = "merchant"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldCurrency  = "currency"
	FieldCount     = "count"
	FieldFile      = "file_path"
	FieldOperation = "operation"
	FieldDateFrom  = "date_from"
	FieldDateTo    = "date_to"
)
