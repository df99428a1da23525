package business

import (
	"context"

	"github.com/Conte777/songid-bot/internal/domain/recognition/deps"
	"github.com/Conte777/songid-bot/internal/domain/recognition/entities"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
)

// MediaResolver fills in the file location and content of a Media
type MediaResolver struct {
	files deps.FileProvider
}

// NewMediaResolver creates a new MediaResolver
func NewMediaResolver(files deps.FileProvider) *MediaResolver {
	return &MediaResolver{files: files}
}

// ResolveLocation asks Telegram for the downloadable path of the media
func (r *MediaResolver) ResolveLocation(ctx context.Context, media *entities.Media) error {
	path, err := r.files.GetFilePath(ctx, media.FileID)
	if err != nil {
		return err
	}
	if path == "" {
		return recerrors.ErrEmptyFileLocation
	}

	media.FilePath = path
	return nil
}

// FetchBytes downloads the media content.
// A missing location is resolved once before the single download attempt.
func (r *MediaResolver) FetchBytes(ctx context.Context, media *entities.Media) error {
	if !media.HasLocation() {
		if err := r.ResolveLocation(ctx, media); err != nil {
			return err
		}
	}

	data, err := r.files.Download(ctx, media.FilePath)
	if err != nil {
		return err
	}

	media.Content = data
	return nil
}
