// Package entities contains domain entities
package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-telegram/bot/models"
)

// Update is one inbound event from Telegram
type Update struct {
	ID      int64
	Message *Message
}

// Message is a user message; Media is nil when nothing recognizable is attached
type Message struct {
	ID       int
	From     *User
	Date     time.Time
	Chat     Chat
	Media    *Media
	Entities []Entity
}

// User is the message sender
type User struct {
	ID           int64
	IsBot        bool
	FirstName    string
	Username     string
	LanguageCode string
}

// Chat is the destination for replies
type Chat struct {
	ID       int64
	Type     string
	Title    string
	Username string
}

// Entity is a message entity such as a URL
type Entity struct {
	Type string
	URL  string
}

// DecodeUpdate builds an Update from a raw webhook document.
// Absent message, media and entities are left unset.
func DecodeUpdate(raw []byte) (*Update, error) {
	var upd models.Update
	if err := json.Unmarshal(raw, &upd); err != nil {
		return nil, fmt.Errorf("failed to decode update: %w", err)
	}

	update := &Update{ID: int64(upd.ID)}
	if upd.Message != nil {
		update.Message = newMessage(upd.Message)
	}

	return update, nil
}

func newMessage(msg *models.Message) *Message {
	m := &Message{
		ID:   int(msg.ID),
		Date: time.Unix(int64(msg.Date), 0).UTC(),
		Chat: Chat{
			ID:       int64(msg.Chat.ID),
			Type:     string(msg.Chat.Type),
			Title:    msg.Chat.Title,
			Username: msg.Chat.Username,
		},
		Media: mediaFrom(msg),
	}

	if msg.From != nil {
		m.From = &User{
			ID:           int64(msg.From.ID),
			IsBot:        msg.From.IsBot,
			FirstName:    msg.From.FirstName,
			Username:     msg.From.Username,
			LanguageCode: msg.From.LanguageCode,
		}
	}

	for _, e := range msg.Entities {
		m.Entities = append(m.Entities, Entity{Type: string(e.Type), URL: e.URL})
	}

	return m
}

// mediaFrom picks the attachment in fixed priority: audio, video, voice, video note
func mediaFrom(msg *models.Message) *Media {
	switch {
	case msg.Audio != nil:
		return &Media{
			Kind:      MediaAudio,
			FileID:    msg.Audio.FileID,
			FileSize:  int64(msg.Audio.FileSize),
			MimeType:  msg.Audio.MimeType,
			Duration:  int(msg.Audio.Duration),
			Performer: msg.Audio.Performer,
			Title:     msg.Audio.Title,
		}
	case msg.Video != nil:
		return &Media{
			Kind:     MediaVideo,
			FileID:   msg.Video.FileID,
			FileSize: int64(msg.Video.FileSize),
			MimeType: msg.Video.MimeType,
		}
	case msg.Voice != nil:
		return &Media{
			Kind:     MediaVoice,
			FileID:   msg.Voice.FileID,
			FileSize: int64(msg.Voice.FileSize),
			MimeType: msg.Voice.MimeType,
			Duration: int(msg.Voice.Duration),
		}
	case msg.VideoNote != nil:
		return &Media{
			Kind:     MediaVideoNote,
			FileID:   msg.VideoNote.FileID,
			FileSize: int64(msg.VideoNote.FileSize),
			Duration: int(msg.VideoNote.Duration),
		}
	default:
		return nil
	}
}
