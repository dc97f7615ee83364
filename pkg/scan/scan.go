// Package scan walks a directory tree and runs every file through an
// extractor registry on a worker pool. It is the batch counterpart to a
// single registry call: the registry itself is stateless, so the same
// instance is shared by all workers.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/prismon/mediameta/pkg/extractor"
	"github.com/prismon/mediameta/pkg/logger"
	"github.com/prismon/mediameta/pkg/pathutil"
	"github.com/prismon/mediameta/pkg/queue"
)

var log = logger.WithName("scan")

// Result pairs a scanned file with its normalized record.
type Result struct {
	Path   string
	Record *extractor.Record
}

// Sink receives one Result per file that produced metadata. It is
// called concurrently from worker goroutines and must be safe for
// concurrent use.
type Sink func(Result)

// Stats summarizes a finished scan.
type Stats struct {
	FilesSeen int64 // regular files encountered
	Extracted int64 // files that yielded a record
	Skipped   int64 // files no extractor produced data for
	WalkErrs  int64 // directories or entries that could not be read
}

// Options configures a scan.
type Options struct {
	// WorkerCount defaults to the number of CPUs.
	WorkerCount int
	// QueueSize bounds the dispatch queue; defaults to 256.
	QueueSize int
}

// Scanner drives batch extraction over a registry.
type Scanner struct {
	registry *extractor.Registry
	opts     Options
}

// NewScanner creates a scanner over the given registry.
func NewScanner(registry *extractor.Registry, opts Options) *Scanner {
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = runtime.NumCPU()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	return &Scanner{registry: registry, opts: opts}
}

type fileJob struct {
	scanner *Scanner
	path    string
	sink    Sink
	stats   *Stats
}

func (j *fileJob) ID() string { return j.path }

func (j *fileJob) Execute(ctx context.Context) error {
	rec := j.scanner.registry.Extract(j.path, pathutil.Ext(j.path), pathutil.MIMEType(j.path))
	if rec == nil {
		atomic.AddInt64(&j.stats.Skipped, 1)
		return nil
	}
	atomic.AddInt64(&j.stats.Extracted, 1)
	if j.sink != nil {
		j.sink(Result{Path: j.path, Record: rec})
	}
	return nil
}

// Run walks root and extracts metadata from every regular file,
// delivering records to sink. It blocks until the walk and all queued
// extractions finish. Unreadable entries are counted and skipped; only
// a root that cannot be walked at all is an error.
func (s *Scanner) Run(root string, sink Sink) (*Stats, error) {
	expanded, err := pathutil.ExpandAndValidatePath(root)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	pool := queue.NewWorkerPool(s.opts.WorkerCount, s.opts.QueueSize)
	pool.Start()

	log.WithFields(logrus.Fields{
		"root":    expanded,
		"workers": s.opts.WorkerCount,
	}).Info("Starting metadata scan")

	walkErr := filepath.WalkDir(expanded, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			atomic.AddInt64(&stats.WalkErrs, 1)
			log.WithError(err).WithField("path", path).Debug("Skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		atomic.AddInt64(&stats.FilesSeen, 1)
		return pool.Submit(&fileJob{
			scanner: s,
			path:    path,
			sink:    sink,
			stats:   stats,
		})
	})

	pool.Stop()

	if walkErr != nil {
		return stats, walkErr
	}

	log.WithFields(logrus.Fields{
		"seen":      stats.FilesSeen,
		"extracted": stats.Extracted,
		"skipped":   stats.Skipped,
	}).Info("Scan complete")

	return stats, nil
}
