// Package types contains the wire-level type definitions for the playback
// module: the media source description received from the catalog, the
// playback decision returned to the player selection logic, and the device
// profile document sent to the media server.
package types

// PlaybackMethod is the delivery strategy chosen for a single media source.
type PlaybackMethod string

const (
	// PlaybackMethodDirectPlay plays the source byte-for-byte with no
	// server-side transformation.
	PlaybackMethodDirectPlay PlaybackMethod = "DirectPlay"
	// PlaybackMethodDirectStream remuxes the container without re-encoding.
	PlaybackMethodDirectStream PlaybackMethod = "DirectStream"
	// PlaybackMethodTranscode re-encodes audio and/or video.
	PlaybackMethodTranscode PlaybackMethod = "Transcode"
)

// VideoStream describes the video track of a media source.
type VideoStream struct {
	Codec     string  `json:"codec"`
	Profile   string  `json:"profile,omitempty"`
	Level     int     `json:"level,omitempty"`
	BitDepth  int     `json:"bit_depth,omitempty"`
	RangeType string  `json:"range_type,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Framerate float64 `json:"framerate,omitempty"`
}

// AudioStream describes the primary audio track of a media source.
type AudioStream struct {
	Codec            string `json:"codec"`
	Channels         int    `json:"channels,omitempty"`
	IsSecondaryAudio bool   `json:"is_secondary_audio,omitempty"`
}

// MediaSource describes one concrete playable item as reported by the media
// catalog. Either stream may be absent: a missing video stream means the item
// is audio-only, a missing audio stream means video-only.
type MediaSource struct {
	Container   string       `json:"container"`
	VideoStream *VideoStream `json:"video_stream,omitempty"`
	AudioStream *AudioStream `json:"audio_stream,omitempty"`
}

// PlaybackDecision is the outcome of evaluating a media source against the
// current capability snapshot. Decisions are computed on demand and never
// cached across sources.
type PlaybackDecision struct {
	Method PlaybackMethod `json:"method"`
	Reason string         `json:"reason,omitempty"`
}
