// Package deps contains interface definitions for the recognition domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/songid-bot/internal/domain/recognition/dto"
)

// FileProvider resolves and downloads Telegram files
type FileProvider interface {
	// GetFilePath returns the downloadable path of a file
	GetFilePath(ctx context.Context, fileID string) (string, error)

	// Download fetches the raw bytes stored at path
	Download(ctx context.Context, path string) ([]byte, error)
}

// Recognizer submits media content to the recognition service
type Recognizer interface {
	// Recognize sends data, skipping offset seconds, and returns the decoded result
	Recognize(ctx context.Context, data []byte, offset int) (*dto.RecognitionResult, error)
}

// ChatSender delivers text to a chat
type ChatSender interface {
	// SendMessage sends HTML formatted text to chatID
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// UpdateQueue is the shared work queue of raw update documents
type UpdateQueue interface {
	// Push appends a raw document to the back of the queue
	Push(ctx context.Context, raw []byte) error

	// Pop waits up to the poll timeout for a document.
	// It returns queue.ErrEmpty when nothing arrived in time.
	Pop(ctx context.Context) ([]byte, error)
}
