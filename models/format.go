package models

// Record key/value formats understood by the console printer.
const (
	FormatString = "string"
	FormatJSON   = "json"
)

// IsSupportedFormat reports whether format names a known record format.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatString, FormatJSON:
		return true
	}
	return false
}
