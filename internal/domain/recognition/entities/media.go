package entities

// MediaKind identifies which attachment variant a Media holds
type MediaKind int

const (
	MediaAudio MediaKind = iota + 1
	MediaVideo
	MediaVoice
	MediaVideoNote
)

func (k MediaKind) String() string {
	switch k {
	case MediaAudio:
		return "audio"
	case MediaVideo:
		return "video"
	case MediaVoice:
		return "voice"
	case MediaVideoNote:
		return "video_note"
	default:
		return "none"
	}
}

// Media is an attachment that can be sent to recognition.
// FilePath, Content and Metadata are filled in as the update is processed.
type Media struct {
	Kind   MediaKind
	FileID string
	// FileSize is zero when Telegram did not report it
	FileSize int64
	MimeType string
	// Duration in seconds; not reported for video
	Duration int
	// Performer and Title are set for audio only
	Performer string
	Title     string

	FilePath string
	Content  []byte
	Metadata *Metadata
}

// HasLocation reports whether the downloadable file path is known
func (m *Media) HasLocation() bool {
	return m.FilePath != ""
}

// HasContent reports whether the raw bytes were downloaded
func (m *Media) HasContent() bool {
	return len(m.Content) > 0
}
