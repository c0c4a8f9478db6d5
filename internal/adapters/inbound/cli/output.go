package cli

import (
	"encoding/json"
	"io"

	"github.com/openkraft/javaqc/internal/adapters/outbound/cache"
	"github.com/openkraft/javaqc/internal/adapters/outbound/logfile"
	"github.com/openkraft/javaqc/internal/application"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newParseService() *application.ParseService {
	return application.NewParseService(logfile.New(), cache.New(cache.DefaultTTL))
}
