package extractor

import (
	"encoding/json"
	"fmt"
)

// Dialect identifies the tag-encoding scheme a record's fields came from.
// It is distinct from the container file type: a .mp4 file may carry MP4
// atoms (tagged audio) or be probed as a generic media container.
type Dialect string

const (
	DialectID3      Dialect = "id3"
	DialectMP4      Dialect = "mp4"
	DialectVorbis   Dialect = "vorbis"
	DialectAPE      Dialect = "ape"
	DialectRIFF     Dialect = "riff"
	DialectMatroska Dialect = "matroska"
	DialectOPF      Dialect = "opf"
	DialectUnknown  Dialect = "unknown"
)

// Canonical field names shared across all dialects. Values in
// Record.Fields are strings except the track/disc numbers, which are ints.
const (
	FieldTitle       = "title"
	FieldArtist      = "artist"
	FieldAlbum       = "album"
	FieldAlbumArtist = "album_artist"
	FieldGenre       = "genre"
	FieldDate        = "date"
	FieldLanguage    = "language"
	FieldPublisher   = "publisher"
	FieldTrack       = "track"
	FieldTrackTotal  = "track_total"
	FieldDisc        = "disc"
	FieldDiscTotal   = "disc_total"
	FieldAuthor      = "author"
	FieldIdentifier  = "identifier"
	FieldLyrics      = "lyrics"
	FieldEncoder     = "encoder"
	FieldComposer    = "composer"
	FieldComment     = "comment"
)

// Record is the uniform metadata shape produced for every supported file
// type. A Record is built fresh per extraction call and not mutated after
// it is returned.
//
// Optional attributes use pointers so "undetermined" is distinguishable
// from zero/false: they are omitted entirely rather than set to a zero
// value.
type Record struct {
	// Container is the lowercase file-type tag ("mp3", "mkv", "epub"),
	// derived from the file extension, not from content sniffing.
	Container string `json:"container"`

	// TagFormat is the dialect the fields were mapped from.
	TagFormat Dialect `json:"tag_format"`

	// Fields maps canonical field names to normalized values. A key is
	// present only when the source carried a non-empty value.
	Fields map[string]any `json:"fields"`

	// DurationMS is the media duration in milliseconds, present only when
	// the source exposes a positive duration.
	DurationMS *int64 `json:"duration_ms,omitempty"`

	// Chapters is the number of chapter markers, present only when > 0.
	Chapters *int `json:"chapters,omitempty"`

	// HasCoverArt reports embedded cover art, present only when the
	// dialect has a defined presence check.
	HasCoverArt *bool `json:"has_cover_art,omitempty"`
}

// NewRecord returns a record for the given container and dialect with an
// empty fields map.
func NewRecord(container string, format Dialect) *Record {
	return &Record{
		Container: container,
		TagFormat: format,
		Fields:    make(map[string]any),
	}
}

// Empty reports whether the record carries no data at all. A record with
// no fields but a known duration, chapter count or cover-art flag is not
// empty: the registry treats any populated attribute as a successful
// extraction.
func (r *Record) Empty() bool {
	if r == nil {
		return true
	}
	return len(r.Fields) == 0 && r.DurationMS == nil && r.Chapters == nil && r.HasCoverArt == nil
}

// SetDuration records a duration given in seconds, truncated to whole
// milliseconds. Non-positive durations are ignored.
func (r *Record) SetDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	ms := int64(seconds * 1000)
	r.DurationMS = &ms
}

// SetChapters records a chapter count. Zero or negative counts are
// ignored so the attribute stays absent rather than becoming zero.
func (r *Record) SetChapters(n int) {
	if n <= 0 {
		return
	}
	r.Chapters = &n
}

// SetCoverArt records the cover-art presence flag.
func (r *Record) SetCoverArt(present bool) {
	r.HasCoverArt = &present
}

// ToJSON serializes the record for callers that persist or transmit it.
func (r *Record) ToJSON() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}
	return string(data), nil
}
