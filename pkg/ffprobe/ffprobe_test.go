package ffprobe

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismon/mediameta/pkg/extractor"
)

const probeJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "duration": "5400.750000",
      "width": 1920,
      "height": 1080
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "duration": "5400.750000",
      "tags": {"language": "eng"}
    },
    {
      "index": 2,
      "codec_name": "subrip",
      "codec_type": "subtitle",
      "tags": {"language": "fre"}
    }
  ],
  "chapters": [
    {"id": 1, "start_time": "0.000000", "end_time": "300.000000", "tags": {"title": "Opening"}},
    {"id": 2, "start_time": "300.000000", "end_time": "5400.750000", "tags": {"title": "Feature"}}
  ],
  "format": {
    "filename": "feature.mkv",
    "nb_streams": 3,
    "format_name": "matroska,webm",
    "duration": "5400.750000",
    "tags": {"TITLE": "Feature Film", "ARTIST": "Studio"}
  }
}`

func decodeResult(t *testing.T) Result {
	t.Helper()
	var result Result
	require.NoError(t, json.Unmarshal([]byte(probeJSON), &result))
	return result
}

func TestResultDurationSeconds(t *testing.T) {
	result := decodeResult(t)
	assert.InDelta(t, 5400.75, result.DurationSeconds(), 0.001)
}

func TestResultDurationSecondsMissing(t *testing.T) {
	assert.Zero(t, Result{}.DurationSeconds())
	assert.Zero(t, Result{Format: Format{Duration: "garbage"}}.DurationSeconds())
	assert.Zero(t, Result{Format: Format{Duration: "-1.5"}}.DurationSeconds())
}

func TestContainerInfo(t *testing.T) {
	info := containerInfo(decodeResult(t))

	require.Len(t, info.Tracks, 4)
	assert.Equal(t, 2, info.Chapters)

	general := info.General()
	require.NotNil(t, general)
	assert.Equal(t, extractor.TrackTypeGeneral, general.Type)
	assert.Equal(t, "Feature Film", general.Tags["TITLE"])
	assert.InDelta(t, 5400.75, general.Duration, 0.001)

	assert.Equal(t, "Video", info.Tracks[1].Type)
	assert.InDelta(t, 5400.75, info.Tracks[1].Duration, 0.001)
	assert.Equal(t, "Audio", info.Tracks[2].Type)
	assert.Equal(t, "eng", info.Tracks[2].Tags["language"])
	assert.Equal(t, "Subtitle", info.Tracks[3].Type)
	assert.Zero(t, info.Tracks[3].Duration)
}

func TestContainerInfoEmptyResult(t *testing.T) {
	info := containerInfo(Result{})

	require.Len(t, info.Tracks, 1)
	assert.Equal(t, 0, info.Chapters)

	general := info.General()
	require.NotNil(t, general)
	assert.Empty(t, general.Tags)
	assert.Zero(t, general.Duration)
}

func TestStreamTrackType(t *testing.T) {
	assert.Equal(t, "Video", streamTrackType("video"))
	assert.Equal(t, "Audio", streamTrackType("AUDIO"))
	assert.Equal(t, "Subtitle", streamTrackType("subtitle"))
	assert.Equal(t, "Other", streamTrackType("data"))
	assert.Equal(t, "Other", streamTrackType(""))
}

func TestInspectEmptyPath(t *testing.T) {
	_, err := Inspect(context.Background(), "ffprobe", "")
	assert.Error(t, err)
}

func TestUnavailableDecoder(t *testing.T) {
	d := &Decoder{}
	assert.False(t, d.Available())

	_, err := d.Decode("/tmp/anything.mkv")
	assert.Error(t, err)
}
