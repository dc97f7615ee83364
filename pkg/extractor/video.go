package extractor

import (
	"fmt"
	"strings"
)

// TrackTypeGeneral is the container-level track every video decode must
// expose; stream-level tracks are optional.
const TrackTypeGeneral = "General"

// ContainerTrack is one typed track from a probed media container.
type ContainerTrack struct {
	// Type is "General" for the container itself, or a stream kind
	// ("Video", "Audio", "Subtitle").
	Type string

	// Tags holds the track's tag names and values as reported by the
	// probe; names are matched case-insensitively.
	Tags map[string]string

	// Duration in seconds; 0 when unknown.
	Duration float64
}

// ContainerInfo is the result of probing a media container.
type ContainerInfo struct {
	Tracks   []ContainerTrack
	Chapters int
}

// General returns the container-level track, or nil when the probe did
// not produce one.
func (c *ContainerInfo) General() *ContainerTrack {
	for i := range c.Tracks {
		if strings.EqualFold(c.Tracks[i].Type, TrackTypeGeneral) {
			return &c.Tracks[i]
		}
	}
	return nil
}

// VideoDecoder is the external collaborator contract for media
// containers: given a path, return the typed track list or fail.
type VideoDecoder interface {
	Available() bool
	Decode(path string) (*ContainerInfo, error)
}

// matroskaExtensions are containers carrying Matroska-style tags; the
// remaining claimed extensions report the mp4 dialect.
var matroskaExtensions = map[string]bool{
	"mkv":  true,
	"webm": true,
}

var videoExtensions = map[string]bool{
	"mkv":  true,
	"webm": true,
	"mp4":  true,
	"mov":  true,
}

// VideoExtractor normalizes container-level metadata from video files
// through a VideoDecoder. In the default registry it runs after the
// tagged-audio extractor, so mp4/mov files with real atom tags are
// claimed there first and this extractor picks up what remains.
type VideoExtractor struct {
	decoder VideoDecoder
	ok      bool
}

// NewVideoExtractor wraps the given decoder; a nil or unavailable
// decoder yields an extractor that declines every file.
func NewVideoExtractor(decoder VideoDecoder) *VideoExtractor {
	ex := &VideoExtractor{decoder: decoder}
	ex.ok = decoder != nil && decoder.Available()
	return ex
}

func (v *VideoExtractor) Name() string { return "video-container" }

func (v *VideoExtractor) Supports(path, ext, mime string) bool {
	return v.ok && videoExtensions[ext]
}

func (v *VideoExtractor) Extract(path string) (*Record, error) {
	if !v.ok {
		return nil, nil
	}

	info, err := v.decoder.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("container probe: %w", err)
	}
	if info == nil {
		return nil, nil
	}

	general := info.General()
	if general == nil {
		return nil, nil
	}

	container := containerFromPath(path)
	format := DialectMP4
	if matroskaExtensions[container] {
		format = DialectMatroska
	}

	rec := NewRecord(container, format)
	tags := make(map[string]string, len(general.Tags))
	for key, value := range general.Tags {
		tags[strings.ToLower(key)] = value
	}
	// Ordered so "artist" beats "performer" and the more specific date
	// tags beat the bare "date" when a file carries both.
	for _, key := range matroskaTagOrder {
		value := tags[key]
		if value == "" {
			continue
		}
		name := matroskaTags[key]
		if _, exists := rec.Fields[name]; !exists {
			rec.Fields[name] = value
		}
	}

	rec.SetDuration(general.Duration)
	rec.SetChapters(info.Chapters)

	return rec, nil
}
