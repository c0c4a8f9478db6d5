package buildlog

// Transcript lines written by the javac runner and recognized by the parser.
const (
	HeaderFormat    = "=== Build Log for %s ==="
	DateFormat      = "Date: %s"
	InventoryFormat = "Found %d Java files to compile:"
	InventoryItem   = "  - %s"
	CompilingFormat = "Compiling: %s"
	RunningFormat   = "Running: %s"
	FailedFormat    = "ERROR Compilation failed for %s"
	NoFilesLine     = "ERROR No Java files found in the repository"
	SuccessLine     = "SUCCESS All Java files compiled successfully"
	GiveUpLine      = "Individual compilation failed."

	// TimestampLayout is the layout of the Date banner value.
	TimestampLayout = "2006-01-02 15:04:05"

	successMarker = "All Java files compiled successfully"
	failedMarker  = "Compilation failed for"
	failedBanner  = "ERROR Compilation failed"
)
