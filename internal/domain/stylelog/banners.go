package stylelog

// Transcript lines written by the Checkstyle runner and recognized by the parser.
const (
	HeaderFormat        = "=== Checkstyle Report for %s ==="
	DateFormat          = "Date: %s"
	ConfigurationFormat = "Configuration: %s"
	FileFormat          = "--- File: %s ---"
	SummaryBanner       = "=== Summary ==="
	PassedLine          = "No Checkstyle errors found."
	TotalFormat         = "Total: %d style violations in %d files"

	// ErrorMarker tags a violation line in Checkstyle's plain output.
	ErrorMarker = "[ERROR]"

	passedMarker = "No Checkstyle errors found"
)
