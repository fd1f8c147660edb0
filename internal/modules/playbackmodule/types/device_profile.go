package types

// The structs below are the playback negotiation document consumed by the
// media server. Field names and nesting are a wire-format contract with the
// server's transcoding pipeline and must not be renamed.

// ProfileConditionType is the comparison operator of a profile condition.
type ProfileConditionType string

const (
	ConditionEquals        ProfileConditionType = "Equals"
	ConditionNotEquals     ProfileConditionType = "NotEquals"
	ConditionLessThanEqual ProfileConditionType = "LessThanEqual"
	ConditionEqualsAny     ProfileConditionType = "EqualsAny"
)

// Well-known condition properties.
const (
	PropertyWidth            = "Width"
	PropertyHeight           = "Height"
	PropertyVideoFramerate   = "VideoFramerate"
	PropertyVideoBitrate     = "VideoBitrate"
	PropertyVideoLevel       = "VideoLevel"
	PropertyVideoProfile     = "VideoProfile"
	PropertyVideoRangeType   = "VideoRangeType"
	PropertyVideoBitDepth    = "VideoBitDepth"
	PropertyAudioChannels    = "AudioChannels"
	PropertyIsSecondaryAudio = "IsSecondaryAudio"
)

// ProfileCondition is a single predicate inside a codec or container profile.
// IsRequired distinguishes hard filters from advisory conditions used for
// scoring by the server.
type ProfileCondition struct {
	Condition  ProfileConditionType `json:"Condition"`
	Property   string               `json:"Property"`
	Value      string               `json:"Value"`
	IsRequired bool                 `json:"IsRequired"`
}

// DlnaProfileType distinguishes video from audio entries.
type DlnaProfileType string

const (
	ProfileTypeVideo DlnaProfileType = "Video"
	ProfileTypeAudio DlnaProfileType = "Audio"
)

// DirectPlayProfile declares one container the device can play natively,
// with the codecs allowed inside it as comma-separated lists.
type DirectPlayProfile struct {
	Container  string          `json:"Container"`
	Type       DlnaProfileType `json:"Type"`
	VideoCodec string          `json:"VideoCodec,omitempty"`
	AudioCodec string          `json:"AudioCodec,omitempty"`
}

// TranscodingProfile declares one server-side delivery target, in order of
// preference. The first structurally valid target is what the server tries
// first.
type TranscodingProfile struct {
	Container           string          `json:"Container"`
	Type                DlnaProfileType `json:"Type"`
	VideoCodec          string          `json:"VideoCodec,omitempty"`
	AudioCodec          string          `json:"AudioCodec,omitempty"`
	Protocol            string          `json:"Protocol,omitempty"`
	Context             string          `json:"Context,omitempty"`
	MaxAudioChannels    string          `json:"MaxAudioChannels,omitempty"`
	MinSegments         int             `json:"MinSegments,omitempty"`
	BreakOnNonKeyFrames bool            `json:"BreakOnNonKeyFrames,omitempty"`
}

// ContainerProfile constrains a container independent of codec.
type ContainerProfile struct {
	Type       DlnaProfileType    `json:"Type"`
	Container  string             `json:"Container,omitempty"`
	Conditions []ProfileCondition `json:"Conditions,omitempty"`
}

// CodecProfileType distinguishes the stream kind a codec profile applies to.
type CodecProfileType string

const (
	CodecTypeVideo      CodecProfileType = "Video"
	CodecTypeVideoAudio CodecProfileType = "VideoAudio"
	CodecTypeAudio      CodecProfileType = "Audio"
)

// CodecProfile attaches conditions to a codec, optionally scoped to a
// container filter. ApplyConditions select the streams the Conditions apply
// to.
type CodecProfile struct {
	Type            CodecProfileType   `json:"Type"`
	Codec           string             `json:"Codec,omitempty"`
	Container       string             `json:"Container,omitempty"`
	Conditions      []ProfileCondition `json:"Conditions,omitempty"`
	ApplyConditions []ProfileCondition `json:"ApplyConditions,omitempty"`
}

// SubtitleDeliveryMethod is how a subtitle format reaches the client.
type SubtitleDeliveryMethod string

const (
	SubtitleMethodEmbed    SubtitleDeliveryMethod = "Embed"
	SubtitleMethodExternal SubtitleDeliveryMethod = "External"
	SubtitleMethodEncode   SubtitleDeliveryMethod = "Encode"
)

// SubtitleProfile declares one supported subtitle format and its delivery.
type SubtitleProfile struct {
	Format string                 `json:"Format"`
	Method SubtitleDeliveryMethod `json:"Method"`
}

// ResponseProfile overrides the MIME type reported for a container.
type ResponseProfile struct {
	Type      DlnaProfileType `json:"Type"`
	Container string          `json:"Container"`
	MimeType  string          `json:"MimeType"`
}

// DeviceProfile is the compiled negotiation document describing everything
// the client claims to support. It is a pure projection of the capability
// snapshot and is rebuilt, never patched, when capabilities change.
type DeviceProfile struct {
	MaxStreamingBitrate              int                  `json:"MaxStreamingBitrate"`
	MaxStaticBitrate                 int                  `json:"MaxStaticBitrate"`
	MusicStreamingTranscodingBitrate int                  `json:"MusicStreamingTranscodingBitrate"`
	DirectPlayProfiles               []DirectPlayProfile  `json:"DirectPlayProfiles"`
	TranscodingProfiles              []TranscodingProfile `json:"TranscodingProfiles"`
	ContainerProfiles                []ContainerProfile   `json:"ContainerProfiles"`
	CodecProfiles                    []CodecProfile       `json:"CodecProfiles"`
	SubtitleProfiles                 []SubtitleProfile    `json:"SubtitleProfiles"`
	ResponseProfiles                 []ResponseProfile    `json:"ResponseProfiles"`
}
