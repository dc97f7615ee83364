package extractor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// AudioTags is the opaque container returned by a tagged-audio decode
// capability. Frames holds the dialect-native keys (ID3 frame IDs, MP4
// atom names, Vorbis comment names, RIFF chunk IDs); the decoder assigns
// the Dialect explicitly rather than leaving it to be inferred from the
// container's shape.
type AudioTags struct {
	Dialect Dialect

	// Frames maps native tag keys to values. Values may be strings,
	// string slices, ints, or [2]int pairs for track/disc atoms.
	Frames map[string]any

	// Duration in seconds; 0 when the decoder does not expose one.
	Duration float64
}

// AudioDecoder is the external collaborator contract for tagged audio:
// given a path, return a dialect-tagged frame container or fail.
type AudioDecoder interface {
	// Available reports whether the decode capability can be used at
	// all. It is checked once, at extractor construction.
	Available() bool

	Decode(path string) (*AudioTags, error)
}

// audioExtensions are the containers the tagged-audio extractor claims.
var audioExtensions = map[string]bool{
	"mp3":  true,
	"m4a":  true,
	"m4b":  true,
	"mp4":  true,
	"flac": true,
	"ogg":  true,
	"opus": true,
	"ape":  true,
	"wv":   true,
	"wav":  true,
	"mov":  true,
}

// AudioExtractor normalizes tagged-audio metadata (ID3, MP4 atoms,
// Vorbis comments, APE, RIFF INFO) through an AudioDecoder.
type AudioExtractor struct {
	decoder AudioDecoder
	ok      bool
}

// NewAudioExtractor wraps the given decoder. If the decoder is nil or
// reports itself unavailable, the extractor permanently declines every
// file instead of failing later.
func NewAudioExtractor(decoder AudioDecoder) *AudioExtractor {
	ex := &AudioExtractor{decoder: decoder}
	ex.ok = decoder != nil && decoder.Available()
	return ex
}

func (a *AudioExtractor) Name() string { return "tagged-audio" }

func (a *AudioExtractor) Supports(path, ext, mime string) bool {
	return a.ok && audioExtensions[ext]
}

func (a *AudioExtractor) Extract(path string) (*Record, error) {
	if !a.ok {
		return nil, nil
	}

	tags, err := a.decoder.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("audio decode: %w", err)
	}
	if tags == nil {
		return nil, nil
	}

	rec := NewRecord(containerFromPath(path), tags.Dialect)

	switch tags.Dialect {
	case DialectID3:
		mapID3Fields(rec.Fields, tags.Frames)
	case DialectMP4:
		mapMP4Fields(rec.Fields, tags.Frames)
	case DialectVorbis, DialectAPE:
		mapVorbisFields(rec.Fields, tags.Frames)
	case DialectRIFF:
		mapRIFFFields(rec.Fields, tags.Frames)
	}

	rec.SetDuration(tags.Duration)

	if present, determined := audioCoverArt(tags); determined {
		rec.SetCoverArt(present)
	}
	rec.SetChapters(audioChapters(tags))

	return rec, nil
}

func mapID3Fields(fields map[string]any, frames map[string]any) {
	for _, frame := range id3DatePriority {
		if v := stringValue(frames[frame]); v != "" {
			fields[FieldDate] = v
			break
		}
	}
	for frame, name := range id3TextFrames {
		if name == FieldDate {
			continue
		}
		if v := stringValue(frames[frame]); v != "" {
			fields[name] = v
		}
	}
	setTrackDisc(fields, FieldTrack, FieldTrackTotal, frames[id3TrackFrame])
	setTrackDisc(fields, FieldDisc, FieldDiscTotal, frames[id3DiscFrame])
}

func mapMP4Fields(fields map[string]any, frames map[string]any) {
	for atom, name := range mp4Atoms {
		if v := stringValue(frames[atom]); v != "" {
			fields[name] = v
		}
	}
	setTrackDisc(fields, FieldTrack, FieldTrackTotal, frames[mp4TrackAtom])
	setTrackDisc(fields, FieldDisc, FieldDiscTotal, frames[mp4DiscAtom])
}

// mapVorbisFields handles Vorbis comments and (via table aliasing) APE
// tags. Comment names are matched case-insensitively; numeric fields use
// plain integer coercion and malformed values are dropped field-locally.
func mapVorbisFields(fields map[string]any, frames map[string]any) {
	for key, raw := range frames {
		name, ok := vorbisComments[strings.ToUpper(key)]
		if !ok {
			continue
		}
		v := stringValue(raw)
		if v == "" {
			continue
		}
		if _, exists := fields[name]; exists {
			continue
		}
		if vorbisNumericFields[name] {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				fields[name] = n
			}
			continue
		}
		fields[name] = v
	}
}

func mapRIFFFields(fields map[string]any, frames map[string]any) {
	for chunk, name := range riffInfo {
		if v := stringValue(frames[chunk]); v != "" {
			fields[name] = v
		}
	}
	setTrackDisc(fields, FieldTrack, FieldTrackTotal, frames["ITRK"])
}

// audioCoverArt applies the dialect-specific presence check. determined
// is false when the dialect has no defined check, so the record attribute
// stays absent instead of becoming false.
func audioCoverArt(tags *AudioTags) (present, determined bool) {
	switch tags.Dialect {
	case DialectID3:
		for key := range tags.Frames {
			if strings.HasPrefix(key, id3PictureFrame) {
				return true, true
			}
		}
		return false, true
	case DialectMP4:
		_, ok := tags.Frames[mp4CoverAtom]
		return ok, true
	case DialectVorbis:
		for key := range tags.Frames {
			if strings.EqualFold(key, vorbisPictureBlock) {
				return true, true
			}
		}
		return false, true
	}
	return false, false
}

// audioChapters counts dialect-specific chapter markers; only ID3 CHAP
// frames have a defined check for tagged audio.
func audioChapters(tags *AudioTags) int {
	if tags.Dialect != DialectID3 {
		return 0
	}
	count := 0
	for key := range tags.Frames {
		if strings.HasPrefix(key, id3ChapterFrame) {
			count++
		}
	}
	return count
}

func setTrackDisc(fields map[string]any, numberField, totalField string, raw any) {
	if raw == nil {
		return
	}
	number, total := NormalizeTrackDisc(raw)
	if number != nil {
		fields[numberField] = *number
	}
	if total != nil {
		fields[totalField] = *total
	}
}

// stringValue coerces the opaque values decoders put in frame maps.
// Unknown types (pictures, binary frames) coerce to "" and are skipped.
func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []string:
		if len(s) > 0 {
			return s[0]
		}
		return ""
	case int:
		return strconv.Itoa(s)
	case fmt.Stringer:
		return s.String()
	}
	return ""
}

func containerFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
