// Package extractor normalizes metadata from heterogeneous media files
// into one uniform record shape. It contains no tag parsing of its own:
// each extractor consumes an external decode capability through a thin
// adapter contract and maps the decoded dialect-specific keys to
// canonical fields.
package extractor

import (
	"github.com/sirupsen/logrus"

	"github.com/prismon/mediameta/pkg/logger"
)

var log = logger.WithName("extractor")

// Extractor is the strategy interface for one file family.
type Extractor interface {
	// Name returns a human-readable name for this extractor.
	Name() string

	// Supports reports whether this extractor claims the file. It is
	// cheap and side-effect free, and returns false for the extractor's
	// whole lifetime when its decode capability was unavailable at
	// construction time.
	Supports(path, ext, mime string) bool

	// Extract decodes the file and returns a normalized record. It
	// returns a nil record (with or without an error) when the file
	// cannot be decoded; it never panics by contract, but the registry
	// guards against it anyway.
	Extract(path string) (*Record, error)
}

// Registry coordinates an ordered list of extractors. Extraction follows
// a first-match policy: the first extractor that claims the file and
// produces a non-empty record wins, and later candidates are never
// consulted or merged.
//
// A Registry is stateless after construction and safe for concurrent use
// across files.
type Registry struct {
	extractors []Extractor
}

// NewRegistry creates a registry trying the given extractors in order.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{extractors: make([]Extractor, 0, len(extractors))}
	for _, ex := range extractors {
		r.Register(ex)
	}
	return r
}

// Register appends an extractor to the candidate list.
func (r *Registry) Register(ex Extractor) {
	if ex == nil {
		return
	}
	r.extractors = append(r.extractors, ex)
	log.WithField("extractor", ex.Name()).Debug("Registered extractor")
}

// Extractors returns information about the registered extractors, in
// candidate order.
func (r *Registry) Extractors() []string {
	names := make([]string, 0, len(r.extractors))
	for _, ex := range r.extractors {
		names = append(names, ex.Name())
	}
	return names
}

// Extract tries each extractor in order and returns the first non-empty
// record, or nil when no extractor claims the file or produces data.
// Faults inside an extractor are confined to that candidate: the scan
// moves on to the next one and nothing propagates to the caller.
//
// ext is the lowercase file extension without the dot, precomputed by
// the caller; mime is an optional hint reserved for future dialect
// disambiguation.
func (r *Registry) Extract(path, ext, mime string) *Record {
	for _, ex := range r.extractors {
		if !ex.Supports(path, ext, mime) {
			continue
		}
		rec := tryExtract(ex, path)
		if rec.Empty() {
			continue
		}
		log.WithFields(logrus.Fields{
			"extractor": ex.Name(),
			"path":      path,
			"format":    rec.TagFormat,
		}).Debug("Extracted metadata")
		return rec
	}
	return nil
}

// tryExtract is the failure-isolating boundary around a single
// extractor: any returned error or panic collapses to a nil record so
// the registry can move to the next candidate.
func tryExtract(ex Extractor, path string) (rec *Record) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{
				"extractor": ex.Name(),
				"path":      path,
				"panic":     r,
			}).Warn("Extractor panicked, trying next")
			rec = nil
		}
	}()

	rec, err := ex.Extract(path)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"extractor": ex.Name(),
			"path":      path,
		}).Warn("Extractor failed, trying next")
		return nil
	}
	return rec
}
