package application

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/openkraft/javaqc/internal/domain"
	"github.com/openkraft/javaqc/internal/domain/buildlog"
	"github.com/openkraft/javaqc/internal/domain/stylelog"
	"github.com/openkraft/javaqc/internal/logging"
)

// LogKind tells which parser a transcript needs.
type LogKind string

const (
	KindBuild   LogKind = "build"
	KindStyle   LogKind = "style"
	KindUnknown LogKind = "unknown"
)

// DetectKind classifies a transcript by its banners.
func DetectKind(text string) LogKind {
	switch {
	case strings.Contains(text, "=== Build Log for"),
		strings.Contains(text, "Compiling: "),
		strings.Contains(text, "Java files to compile"):
		return KindBuild
	case strings.Contains(text, "=== Checkstyle Report for"),
		strings.Contains(text, "--- File: "),
		strings.Contains(text, stylelog.ErrorMarker):
		return KindStyle
	}
	return KindUnknown
}

// ParseOptions tune what a parsed report carries.
type ParseOptions struct {
	// IncludeRaw copies the transcript into the report's raw_content.
	IncludeRaw bool
}

// ParseService reads transcripts and turns them into reports, memoizing
// results when a cache is configured.
type ParseService struct {
	reader  domain.LogReader
	cache   domain.ParseCache
	workers int
}

// NewParseService creates the service. cache may be nil.
func NewParseService(reader domain.LogReader, cache domain.ParseCache) *ParseService {
	return &ParseService{reader: reader, cache: cache, workers: runtime.GOMAXPROCS(0)}
}

// ParseBuildText parses a compiler transcript. The cache keeps its own
// report and every caller gets a deep copy.
func (s *ParseService) ParseBuildText(text string, opts ParseOptions) *domain.BuildReport {
	var r *domain.BuildReport
	if s.cache != nil {
		if cached, ok := s.cache.GetBuild(text); ok {
			r = cached
		}
	}
	if r == nil {
		r = buildlog.Parse(text)
		if s.cache != nil {
			s.cache.PutBuild(text, r)
		}
	}

	out := r.Clone()
	if opts.IncludeRaw {
		out.RawContent = text
	}
	return out
}

// ParseStyleText parses a Checkstyle transcript.
func (s *ParseService) ParseStyleText(text string, opts ParseOptions) *domain.StyleReport {
	var r *domain.StyleReport
	if s.cache != nil {
		if cached, ok := s.cache.GetStyle(text); ok {
			r = cached
		}
	}
	if r == nil {
		r = stylelog.Parse(text)
		if s.cache != nil {
			s.cache.PutStyle(text, r)
		}
	}

	out := r.Clone()
	if opts.IncludeRaw {
		out.RawContent = text
	}
	return out
}

func (s *ParseService) ParseBuildLog(path string, opts ParseOptions) (*domain.BuildReport, error) {
	text, err := s.reader.Read(path)
	if err != nil {
		return nil, err
	}
	r := s.ParseBuildText(text, opts)
	logging.Debug("parsed build log", "path", path, "status", r.Summary.Status, "errors", r.Errors.Count)
	return r, nil
}

func (s *ParseService) ParseStyleLog(path string, opts ParseOptions) (*domain.StyleReport, error) {
	text, err := s.reader.Read(path)
	if err != nil {
		return nil, err
	}
	r := s.ParseStyleText(text, opts)
	logging.Debug("parsed style log", "path", path, "status", r.Summary.Status, "violations", r.Violations.Count)
	return r, nil
}

// ParsedLog is a transcript parsed without knowing its kind up front.
// Exactly one of Build and Style is set unless Kind is KindUnknown.
type ParsedLog struct {
	Path  string              `json:"path,omitempty"`
	Kind  LogKind             `json:"kind"`
	Build *domain.BuildReport `json:"build,omitempty"`
	Style *domain.StyleReport `json:"style,omitempty"`
	Err   string              `json:"error,omitempty"`
}

// ParseText detects the kind of text and parses it. kind overrides detection
// when it is not empty.
func (s *ParseService) ParseText(text string, kind LogKind, opts ParseOptions) ParsedLog {
	if kind == "" || kind == KindUnknown {
		kind = DetectKind(text)
	}
	switch kind {
	case KindBuild:
		return ParsedLog{Kind: kind, Build: s.ParseBuildText(text, opts)}
	case KindStyle:
		return ParsedLog{Kind: kind, Style: s.ParseStyleText(text, opts)}
	}
	return ParsedLog{Kind: KindUnknown, Err: "unrecognized transcript: no build or checkstyle banners"}
}

// ParseBatch parses independent logs on a bounded worker pool. Results keep
// the order of paths; a file that cannot be read is reported in its entry
// and does not stop the others.
func (s *ParseService) ParseBatch(ctx context.Context, paths []string, opts ParseOptions) ([]ParsedLog, error) {
	results := make([]ParsedLog, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(s.workers, len(paths))))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			text, err := s.reader.Read(path)
			if err != nil {
				results[i] = ParsedLog{Path: path, Kind: KindUnknown, Err: err.Error()}
				return nil
			}
			results[i] = s.ParseText(text, "", opts)
			results[i].Path = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing logs: %w", err)
	}
	return results, nil
}
