// Package audiofile implements the tagged-audio decode capability. It
// reads native frame/atom/comment containers with github.com/dhowden/tag,
// falls back to the TagLib binding for formats dhowden/tag cannot parse
// (APE, WavPack, and anything it rejects), and reads WAV RIFF INFO
// chunks with github.com/go-audio/wav. TagLib also supplies durations,
// which dhowden/tag does not expose.
package audiofile

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"go.senan.xyz/taglib"

	"github.com/prismon/mediameta/pkg/extractor"
	"github.com/prismon/mediameta/pkg/pathutil"
)

// Decoder implements extractor.AudioDecoder over the three backends.
type Decoder struct{}

// New returns the default tagged-audio decoder.
func New() *Decoder {
	return &Decoder{}
}

// Available always reports true: all three backends are compiled in
// (TagLib ships as an embedded wasm module, no system library needed).
func (d *Decoder) Available() bool { return true }

// Decode reads the file's native tag container and labels it with its
// dialect.
func (d *Decoder) Decode(path string) (*extractor.AudioTags, error) {
	switch pathutil.Ext(path) {
	case "wav":
		return decodeWAV(path)
	case "ape", "wv":
		return decodeTagLib(path, extractor.DialectAPE)
	}

	tags, err := decodeNative(path)
	if err != nil {
		// dhowden/tag handles ID3/MP4/FLAC/OGG; anything else goes
		// through TagLib, which normalizes keys to Vorbis-style names.
		return decodeTagLib(path, extractor.DialectVorbis)
	}
	return tags, nil
}

func decodeNative(path string) (*extractor.AudioTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	tags := &extractor.AudioTags{
		Dialect: dialectForFormat(m.Format()),
		Frames:  framesFromMetadata(m),
	}

	// dhowden/tag exposes no duration; probe TagLib for it and accept
	// coming up empty.
	if props, err := taglib.ReadProperties(path); err == nil {
		tags.Duration = props.Length.Seconds()
	}

	return tags, nil
}

// dialectForFormat translates the library's format enum into the tag
// dialect. FLAC and OGG files both report VORBIS, their comments share
// one encoding.
func dialectForFormat(f tag.Format) extractor.Dialect {
	switch f {
	case tag.ID3v1, tag.ID3v2_2, tag.ID3v2_3, tag.ID3v2_4:
		return extractor.DialectID3
	case tag.MP4:
		return extractor.DialectMP4
	case tag.VORBIS:
		return extractor.DialectVorbis
	}
	return extractor.DialectUnknown
}

// id3v1Frames maps the lowercase keys dhowden/tag uses for ID3v1 tags to
// their ID3v2 frame equivalents, so one mapping table serves both
// versions of the dialect.
var id3v1Frames = map[string]string{
	"title":  "TIT2",
	"artist": "TPE1",
	"album":  "TALB",
	"year":   "TYER",
	"genre":  "TCON",
	"track":  "TRCK",
}

func framesFromMetadata(m tag.Metadata) map[string]any {
	frames := make(map[string]any, len(m.Raw()))
	for key, value := range m.Raw() {
		switch v := value.(type) {
		case *tag.Comm:
			frames[key] = v.Text
		default:
			frames[key] = value
		}
	}

	switch m.Format() {
	case tag.ID3v1:
		translated := make(map[string]any, len(frames))
		for key, value := range frames {
			if frame, ok := id3v1Frames[key]; ok {
				translated[frame] = stringify(value)
			}
		}
		return translated
	case tag.MP4:
		composePair(frames, "trkn")
		composePair(frames, "disk")
	}

	return frames
}

// composePair folds the separate number/count entries the MP4 parser
// emits into the single ordered pair the notation normalizer expects.
func composePair(frames map[string]any, atom string) {
	number, ok := frames[atom].(int)
	if !ok {
		return
	}
	count, _ := frames[atom+"_count"].(int)
	frames[atom] = [2]int{number, count}
	delete(frames, atom+"_count")
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return fmt.Sprintf("%d", s)
	}
	return ""
}

func decodeTagLib(path string, dialect extractor.Dialect) (*extractor.AudioTags, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, fmt.Errorf("taglib read: %w", err)
	}

	frames := make(map[string]any, len(raw))
	for key, values := range raw {
		if len(values) > 0 {
			frames[key] = values
		}
	}

	tags := &extractor.AudioTags{
		Dialect: dialect,
		Frames:  frames,
	}

	if props, err := taglib.ReadProperties(path); err == nil {
		tags.Duration = props.Length.Seconds()
	}

	return tags, nil
}

func decodeWAV(path string) (*extractor.AudioTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file: %s", path)
	}

	tags := &extractor.AudioTags{
		Dialect: extractor.DialectRIFF,
		Frames:  make(map[string]any),
	}

	dec.ReadMetadata()
	if dec.Metadata != nil {
		for chunk, value := range riffChunks(dec.Metadata) {
			if value != "" {
				tags.Frames[chunk] = value
			}
		}
	}

	if dur, err := dec.Duration(); err == nil {
		tags.Duration = dur.Seconds()
	}

	return tags, nil
}

// riffChunks flattens the decoder's LIST-INFO struct back into the
// chunk IDs the RIFF mapping table is keyed by.
func riffChunks(md *wav.Metadata) map[string]string {
	return map[string]string{
		"INAM": md.Title,
		"IART": md.Artist,
		"IPRD": md.Product,
		"IGNR": md.Genre,
		"ICRD": md.CreationDate,
		"ICMT": md.Comments,
		"ISFT": md.Software,
		"ITRK": md.TrackNbr,
	}
}
