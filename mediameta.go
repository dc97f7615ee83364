// Package mediameta normalizes metadata from heterogeneous media files
// (tagged audio, video containers, EPUB ebooks) into one uniform record
// shape for cataloging pipelines.
//
// The core is an extractor registry: callers hand it a path, a
// precomputed lowercase extension and an optional MIME hint, and get
// back a single normalized record or nothing. Binary tag parsing is
// delegated to pluggable decode capabilities; the default wiring uses
// pure-Go tag readers for audio, ffprobe for video containers (when
// installed), and a built-in OPF reader for EPUB.
//
//	registry := mediameta.DefaultRegistry()
//	rec := registry.Extract("/music/track.mp3", "mp3", "audio/mpeg")
//	if rec != nil {
//		fmt.Println(rec.Fields["title"])
//	}
package mediameta

import (
	"github.com/prismon/mediameta/pkg/audiofile"
	"github.com/prismon/mediameta/pkg/epub"
	"github.com/prismon/mediameta/pkg/extractor"
	"github.com/prismon/mediameta/pkg/ffprobe"
	"github.com/prismon/mediameta/pkg/pathutil"
)

// DefaultRegistry builds the standard extractor registry: tagged audio
// first, then video containers, then ebooks. Order matters only for
// files more than one extractor could claim (mp4/mov); tagged audio
// wins for those. Extractors whose capabilities are unavailable simply
// never claim files.
func DefaultRegistry() *extractor.Registry {
	return extractor.NewRegistry(
		extractor.NewAudioExtractor(audiofile.New()),
		extractor.NewVideoExtractor(ffprobe.New()),
		extractor.NewEbookExtractor(epub.New()),
	)
}

// Extract runs the default registry against a single file, deriving the
// extension and MIME hint from the path. Returns nil when no extractor
// produces data.
func Extract(path string) *extractor.Record {
	return DefaultRegistry().Extract(path, pathutil.Ext(path), pathutil.MIMEType(path))
}
