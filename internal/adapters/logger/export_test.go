package logger

// Unexported error-chain formatting helpers, exposed for the handler tests.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
