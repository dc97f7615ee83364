// Package ffprobe implements the video-container decode capability by
// shelling out to ffprobe and decoding its JSON output into typed
// tracks. The binary is located once, at construction; when it is not
// installed the decoder reports itself unavailable and the video
// extractor permanently declines files instead of failing per call.
package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/prismon/mediameta/pkg/extractor"
	"github.com/prismon/mediameta/pkg/logger"
)

var log = logger.WithName("ffprobe")

// Result represents the parsed output of an ffprobe inspection.
type Result struct {
	Streams  []Stream  `json:"streams"`
	Format   Format    `json:"format"`
	Chapters []Chapter `json:"chapters"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int               `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	Duration  string            `json:"duration"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Tags      map[string]string `json:"tags"`
}

// Format captures container-level metadata.
type Format struct {
	Filename   string            `json:"filename"`
	NBStreams  int               `json:"nb_streams"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Tags       map[string]string `json:"tags"`
}

// Chapter is a container chapter marker.
type Chapter struct {
	ID        int64             `json:"id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Tags      map[string]string `json:"tags"`
}

// DurationSeconds returns the container duration in seconds, or 0 when
// unavailable.
func (r Result) DurationSeconds() float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Inspect executes ffprobe against the provided path and decodes the
// JSON response.
func Inspect(ctx context.Context, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	if strings.TrimSpace(path) == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-hide_banner",
		"-show_format",
		"-show_streams",
		"-show_chapters",
		"-of", "json",
		"--", path,
	)
	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// Decoder implements extractor.VideoDecoder.
type Decoder struct {
	binary string
}

// New locates the ffprobe binary. The lookup happens once; a missing
// binary is remembered for the decoder's lifetime.
func New() *Decoder {
	path, err := exec.LookPath("ffprobe")
	if err != nil {
		log.Debug("ffprobe binary not found, video probing disabled")
		return &Decoder{}
	}
	return &Decoder{binary: path}
}

// Available reports whether ffprobe was found at construction.
func (d *Decoder) Available() bool {
	return d.binary != ""
}

// Decode probes the container and converts the result into typed tracks:
// one General track carrying the container tags and duration, plus one
// track per stream.
func (d *Decoder) Decode(path string) (*extractor.ContainerInfo, error) {
	if !d.Available() {
		return nil, errors.New("ffprobe not available")
	}

	result, err := Inspect(context.Background(), d.binary, path)
	if err != nil {
		return nil, err
	}

	return containerInfo(result), nil
}

func containerInfo(result Result) *extractor.ContainerInfo {
	info := &extractor.ContainerInfo{
		Chapters: len(result.Chapters),
	}

	info.Tracks = append(info.Tracks, extractor.ContainerTrack{
		Type:     extractor.TrackTypeGeneral,
		Tags:     result.Format.Tags,
		Duration: result.DurationSeconds(),
	})

	for _, stream := range result.Streams {
		track := extractor.ContainerTrack{
			Type: streamTrackType(stream.CodecType),
			Tags: stream.Tags,
		}
		if dur, err := strconv.ParseFloat(strings.TrimSpace(stream.Duration), 64); err == nil && dur > 0 {
			track.Duration = dur
		}
		info.Tracks = append(info.Tracks, track)
	}

	return info
}

func streamTrackType(codecType string) string {
	switch strings.ToLower(codecType) {
	case "video":
		return "Video"
	case "audio":
		return "Audio"
	case "subtitle":
		return "Subtitle"
	}
	return "Other"
}
