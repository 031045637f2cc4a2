package logger

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
	TrimWorkingDir      = trimWorkingDir
)
