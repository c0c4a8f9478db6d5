package logfile

import (
	"fmt"
	"os"
	"strings"
)

// Reader implements domain.LogReader for transcripts on disk.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// Read loads path. Bytes that are not valid UTF-8 are replaced so the
// parsers always see well-formed text.
func (r *Reader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading log %s: %w", path, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
