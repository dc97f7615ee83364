package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoDecoder struct {
	info *ContainerInfo
	err  error
}

func (f *fakeVideoDecoder) Available() bool { return true }

func (f *fakeVideoDecoder) Decode(path string) (*ContainerInfo, error) {
	return f.info, f.err
}

func TestVideoExtractorSupports(t *testing.T) {
	ex := NewVideoExtractor(&fakeVideoDecoder{})

	for _, ext := range []string{"mkv", "webm", "mp4", "mov"} {
		assert.True(t, ex.Supports("/x/f."+ext, ext, ""), "ext %s", ext)
	}
	for _, ext := range []string{"mp3", "avi", "epub", ""} {
		assert.False(t, ex.Supports("/x/f."+ext, ext, ""), "ext %s", ext)
	}
}

func TestVideoExtractorMatroska(t *testing.T) {
	ex := NewVideoExtractor(&fakeVideoDecoder{info: &ContainerInfo{
		Tracks: []ContainerTrack{
			{Type: "Video", Tags: map[string]string{"title": "ignored stream title"}},
			{
				Type: TrackTypeGeneral,
				Tags: map[string]string{
					"TITLE":         "Some Film",
					"ALBUM":         "Box Set",
					"PERFORMER":     "Ensemble",
					"GENRE":         "Drama",
					"DATE_RECORDED": "2019",
					"ENCODER":       "libebml",
				},
				Duration: 5400.75,
			},
		},
		Chapters: 12,
	}})

	rec, err := ex.Extract("/video/film.mkv")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "mkv", rec.Container)
	assert.Equal(t, DialectMatroska, rec.TagFormat)
	assert.Equal(t, "Some Film", rec.Fields[FieldTitle])
	assert.Equal(t, "Box Set", rec.Fields[FieldAlbum])
	assert.Equal(t, "Ensemble", rec.Fields[FieldArtist])
	assert.Equal(t, "Drama", rec.Fields[FieldGenre])
	assert.Equal(t, "2019", rec.Fields[FieldDate])
	assert.Equal(t, "libebml", rec.Fields[FieldEncoder])

	require.NotNil(t, rec.DurationMS)
	assert.Equal(t, int64(5400750), *rec.DurationMS)

	require.NotNil(t, rec.Chapters)
	assert.Equal(t, 12, *rec.Chapters)

	assert.Nil(t, rec.HasCoverArt, "video containers have no cover check")
}

func TestVideoExtractorArtistBeatsPerformer(t *testing.T) {
	ex := NewVideoExtractor(&fakeVideoDecoder{info: &ContainerInfo{
		Tracks: []ContainerTrack{{
			Type: TrackTypeGeneral,
			Tags: map[string]string{"artist": "Primary", "performer": "Secondary"},
		}},
	}})

	rec, err := ex.Extract("/video/clip.webm")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, DialectMatroska, rec.TagFormat)
	assert.Equal(t, "Primary", rec.Fields[FieldArtist])
}

func TestVideoExtractorMP4Container(t *testing.T) {
	ex := NewVideoExtractor(&fakeVideoDecoder{info: &ContainerInfo{
		Tracks: []ContainerTrack{{
			Type:     TrackTypeGeneral,
			Tags:     map[string]string{"title": "Clip"},
			Duration: 10.5,
		}},
	}})

	rec, err := ex.Extract("/video/clip.mov")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "mov", rec.Container)
	assert.Equal(t, DialectMP4, rec.TagFormat)
	require.NotNil(t, rec.DurationMS)
	assert.Equal(t, int64(10500), *rec.DurationMS)
}

func TestVideoExtractorNoGeneralTrack(t *testing.T) {
	ex := NewVideoExtractor(&fakeVideoDecoder{info: &ContainerInfo{
		Tracks: []ContainerTrack{{Type: "Video"}},
	}})

	rec, err := ex.Extract("/video/odd.mkv")
	assert.Nil(t, rec)
	assert.NoError(t, err)
}

func TestVideoExtractorUntaggedDurationOnly(t *testing.T) {
	ex := NewVideoExtractor(&fakeVideoDecoder{info: &ContainerInfo{
		Tracks: []ContainerTrack{{Type: TrackTypeGeneral, Duration: 42.0}},
	}})

	rec, err := ex.Extract("/video/raw.mkv")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.Empty(), "a duration-only record still counts as data")
	assert.Empty(t, rec.Fields)
}

func TestVideoExtractorProbeFailure(t *testing.T) {
	ex := NewVideoExtractor(&fakeVideoDecoder{err: errors.New("probe exploded")})
	rec, err := ex.Extract("/video/bad.mkv")
	assert.Nil(t, rec)
	assert.Error(t, err)
}
