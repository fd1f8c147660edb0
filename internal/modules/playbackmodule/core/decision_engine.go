package core

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/lumitv/lumitv/internal/modules/playbackmodule/types"
)

// DecisionEngine evaluates one concrete media source against a capability
// snapshot and picks the cheapest workable delivery strategy. It is pure and
// stateless between calls: decisions are never cached, since capabilities can
// change across the session lifetime and a stale decision must never be
// reused.
type DecisionEngine struct {
	logger hclog.Logger
}

// NewDecisionEngine creates a playback decision engine.
func NewDecisionEngine(logger hclog.Logger) *DecisionEngine {
	return &DecisionEngine{logger: logger}
}

// Reason codes attached to decisions for observability.
const (
	ReasonCompatible             = "compatible"
	ReasonAudioOnly              = "audio-only source"
	ReasonVideoCodecUnsupported  = "video codec not supported"
	ReasonVideoRangeUnsupported  = "video range type not supported"
	ReasonContainerUnsupported   = "container not supported, remuxing"
	ReasonAudioCodecUnsupported  = "audio codec not supported, remuxing"
	ReasonAudioContainerMismatch = "audio codec not carried in this container, remuxing"
)

// Decide returns the delivery strategy for source under flags. Checks run in
// order and short-circuit on the first failure: video codec, then dynamic
// range, then container, then audio. Failing video forces a transcode;
// failing only the container or the audio track downgrades to a remux, which
// is cheap and always preferred over a full transcode.
func (de *DecisionEngine) Decide(source types.MediaSource, flags CapabilityFlags) types.PlaybackDecision {
	result := de.evaluate(source, flags)
	de.logger.Debug("playback decision",
		"container", source.Container,
		"method", result.Method,
		"reason", result.Reason)
	return result
}

func (de *DecisionEngine) evaluate(source types.MediaSource, flags CapabilityFlags) types.PlaybackDecision {
	container := CanonicalContainer(source.Container)

	// A source without video is audio-only; the video checks do not apply.
	if source.VideoStream == nil {
		return de.decideAudioOnly(source, flags)
	}

	codec, doviTagged := CanonicalVideoCodec(source.VideoStream.Codec)
	if !videoCodecEnabled(codec, flags) {
		return decision(types.PlaybackMethodTranscode,
			"%s: %q", ReasonVideoCodecUnsupported, source.VideoStream.Codec)
	}

	rangeType := source.VideoStream.RangeType
	if doviTagged && rangeType == "" {
		rangeType = RangeDOVI
	}
	if !videoRangeSupported(rangeType, flags) {
		return decision(types.PlaybackMethodTranscode,
			"%s: %q", ReasonVideoRangeUnsupported, rangeType)
	}

	if !containerSupported(container, flags) {
		// Codec and range already passed: the stream itself is decodable,
		// only the wrapper is wrong.
		return decision(types.PlaybackMethodDirectStream,
			"%s: %q", ReasonContainerUnsupported, source.Container)
	}

	if source.AudioStream != nil {
		audioCodec := CanonicalAudioCodec(source.AudioStream.Codec)
		if !audioCodecEnabled(audioCodec, flags) {
			return decision(types.PlaybackMethodDirectStream,
				"%s: %q", ReasonAudioCodecUnsupported, source.AudioStream.Codec)
		}
		if !audioAllowedInContainer(audioCodec, container, flags) {
			return decision(types.PlaybackMethodDirectStream,
				"%s: %q in %q", ReasonAudioContainerMismatch, source.AudioStream.Codec, container)
		}
	}

	return decision(types.PlaybackMethodDirectPlay, ReasonCompatible)
}

func (de *DecisionEngine) decideAudioOnly(source types.MediaSource, flags CapabilityFlags) types.PlaybackDecision {
	if source.AudioStream != nil {
		audioCodec := CanonicalAudioCodec(source.AudioStream.Codec)
		if !audioCodecEnabled(audioCodec, flags) {
			return decision(types.PlaybackMethodDirectStream,
				"%s: %q", ReasonAudioCodecUnsupported, source.AudioStream.Codec)
		}
	}
	return decision(types.PlaybackMethodDirectPlay, ReasonAudioOnly)
}

func videoCodecEnabled(codec string, flags CapabilityFlags) bool {
	switch codec {
	case CodecH264:
		return flags.H264
	case CodecHEVC:
		return flags.HEVC
	case CodecAV1:
		return flags.AV1
	case CodecVP9:
		return flags.VP9
	}
	return false
}

// videoRangeSupported gates non-SDR content on the decode path it needs: any
// HDR10-family range requires hdr10, any Dolby Vision variant requires
// dolbyVision. Unknown range tags are treated as SDR.
func videoRangeSupported(rangeType string, flags CapabilityFlags) bool {
	if rangeType == "" || rangeType == RangeSDR {
		return true
	}
	if isDolbyVisionRange(rangeType) {
		return flags.DolbyVision
	}
	if isHDR10FamilyRange(rangeType) {
		return flags.HDR10
	}
	return true
}

func containerSupported(container string, flags CapabilityFlags) bool {
	switch container {
	case "mkv":
		return flags.MKV
	case "webm":
		return flags.WebM
	case "ts":
		return flags.TS
	case "mp4":
		return flags.MP4
	case "avi":
		return flags.AVI
	case "asf":
		return flags.ASF
	}
	return false
}

// audioCodecEnabled is the global audio gate. mp3, truehd, flac and pcm
// decode on every generation; the rest follow their capability flags.
func audioCodecEnabled(codec string, flags CapabilityFlags) bool {
	switch codec {
	case CodecMP3, CodecTrueHD, CodecFLAC, CodecPCM:
		return true
	case CodecAAC:
		return flags.AAC
	case CodecAC3:
		return flags.AC3
	case CodecEAC3:
		return flags.EAC3
	case CodecDTS:
		return flags.DTS
	case CodecOpus:
		return flags.Opus
	}
	return false
}

// dtsContainersAllowed is the per-container DTS allow-list. It is a separate
// predicate from dtsEnabled on purpose: one says whether the decoder exists
// at all, the other says which wrappers the passthrough path accepts, and
// the two are not defined in terms of each other.
func dtsContainersAllowed(tier PlatformTier) map[string]bool {
	if tier >= Tier23 {
		return map[string]bool{"mkv": true, "ts": true, "mp4": true}
	}
	return map[string]bool{"mkv": true, "ts": true}
}

// audioAllowedInContainer applies the platform- and container-specific audio
// exceptions after the global codec gate: a codec can be globally enabled yet
// restricted to a subset of containers on this generation.
func audioAllowedInContainer(codec, container string, flags CapabilityFlags) bool {
	switch codec {
	case CodecDTS:
		return dtsContainersAllowed(flags.Tier)[container]
	case CodecTrueHD:
		// Lossless passthrough is wired through the mp4/ts demuxers only.
		return container == "mp4" || container == "ts"
	}
	return true
}

func decision(method types.PlaybackMethod, format string, args ...interface{}) types.PlaybackDecision {
	return types.PlaybackDecision{
		Method: method,
		Reason: fmt.Sprintf(format, args...),
	}
}
