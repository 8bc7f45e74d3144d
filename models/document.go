package models

// FormatCSV names a comma separated file with a header row. JSON files use FormatJSON.
const FormatCSV = "csv"

// Document is one source document to index. ID is the position of the
// document in its input file.
type Document struct {
	ID     string
	Source map[string]interface{}
}

type BulkFailure struct {
	ID     string
	Status int
	Reason string
}

// BulkResult is the outcome of one or more bulk requests.
type BulkResult struct {
	Indexed int
	Failed  []BulkFailure
}

// Merge adds the counts of other to r.
func (r *BulkResult) Merge(other BulkResult) {
	r.Indexed += other.Indexed
	r.Failed = append(r.Failed, other.Failed...)
}
