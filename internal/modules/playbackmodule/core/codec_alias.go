package core

import "strings"

// Canonical codec tags. All comparisons in the engine run on canonical tags;
// raw catalog strings are mapped through the alias tables first.
const (
	CodecH264   = "h264"
	CodecHEVC   = "hevc"
	CodecAV1    = "av1"
	CodecVP9    = "vp9"
	CodecAAC    = "aac"
	CodecAC3    = "ac3"
	CodecEAC3   = "eac3"
	CodecDTS    = "dts"
	CodecOpus   = "opus"
	CodecMP3    = "mp3"
	CodecFLAC   = "flac"
	CodecTrueHD = "truehd"
	CodecPCM    = "pcm"
)

// videoCodecAliases maps every known video codec spelling to its canonical
// tag. The dvh1/dvhe spellings are Dolby-Vision-tagged HEVC and canonicalize
// to hevc; the Dolby Vision tagging itself travels in the range type.
var videoCodecAliases = map[string]string{
	"h264": CodecH264,
	"avc":  CodecH264,
	"avc1": CodecH264,
	"hevc": CodecHEVC,
	"h265": CodecHEVC,
	"hev1": CodecHEVC,
	"hvc1": CodecHEVC,
	"dvhe": CodecHEVC,
	"dvh1": CodecHEVC,
	"av1":  CodecAV1,
	"av01": CodecAV1,
	"vp9":  CodecVP9,
	"vp09": CodecVP9,
}

// doviTaggedVideoCodecs are the spellings that imply Dolby Vision content
// regardless of the declared range type.
var doviTaggedVideoCodecs = map[string]bool{
	"dvhe": true,
	"dvh1": true,
}

var audioCodecAliases = map[string]string{
	"aac":       CodecAAC,
	"mp4a":      CodecAAC,
	"ac3":       CodecAC3,
	"ac-3":      CodecAC3,
	"eac3":      CodecEAC3,
	"ec3":       CodecEAC3,
	"ec-3":      CodecEAC3,
	"e-ac-3":    CodecEAC3,
	"dts":       CodecDTS,
	"dca":       CodecDTS,
	"opus":      CodecOpus,
	"mp3":       CodecMP3,
	"flac":      CodecFLAC,
	"truehd":    CodecTrueHD,
	"mlp":       CodecTrueHD,
	"pcm":       CodecPCM,
	"pcm_s16le": CodecPCM,
	"pcm_s24le": CodecPCM,
}

// CanonicalVideoCodec maps a raw video codec string to its canonical tag.
// doviTagged reports whether the spelling itself marks Dolby Vision content.
// Unknown codecs are returned lowercased so the caller can still report them.
func CanonicalVideoCodec(codec string) (canonical string, doviTagged bool) {
	lowered := strings.ToLower(strings.TrimSpace(codec))
	if mapped, ok := videoCodecAliases[lowered]; ok {
		return mapped, doviTaggedVideoCodecs[lowered]
	}
	return lowered, false
}

// CanonicalAudioCodec maps a raw audio codec string to its canonical tag.
func CanonicalAudioCodec(codec string) string {
	lowered := strings.ToLower(strings.TrimSpace(codec))
	if mapped, ok := audioCodecAliases[lowered]; ok {
		return mapped
	}
	return lowered
}

// CanonicalContainer normalizes container spellings from the catalog.
func CanonicalContainer(container string) string {
	lowered := strings.ToLower(strings.TrimSpace(container))
	switch lowered {
	case "matroska":
		return "mkv"
	case "mpegts", "m2ts":
		return "ts"
	case "m4v", "mov":
		return "mp4"
	case "wmv":
		return "asf"
	}
	return lowered
}
