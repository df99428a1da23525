package business

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/songid-bot/internal/domain/recognition/entities"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
)

type countingFiles struct {
	path          string
	content       []byte
	pathCalls     int
	downloadCalls int
	downloaded    []string
	pathErr       error
}

func (f *countingFiles) GetFilePath(_ context.Context, _ string) (string, error) {
	f.pathCalls++
	return f.path, f.pathErr
}

func (f *countingFiles) Download(_ context.Context, path string) ([]byte, error) {
	f.downloadCalls++
	f.downloaded = append(f.downloaded, path)
	return f.content, nil
}

func TestMediaResolver_FetchBytesResolvesOnce(t *testing.T) {
	files := &countingFiles{path: "voice/file_1.oga", content: []byte("OggS")}
	media := &entities.Media{Kind: entities.MediaVoice, FileID: "voice-id"}

	require.NoError(t, NewMediaResolver(files).FetchBytes(context.Background(), media))

	assert.Equal(t, 1, files.pathCalls)
	assert.Equal(t, 1, files.downloadCalls)
	assert.Equal(t, []string{"voice/file_1.oga"}, files.downloaded)
	assert.Equal(t, "voice/file_1.oga", media.FilePath)
	assert.Equal(t, []byte("OggS"), media.Content)
}

func TestMediaResolver_FetchBytesWithKnownLocation(t *testing.T) {
	files := &countingFiles{path: "ignored", content: []byte("data")}
	media := &entities.Media{FileID: "id", FilePath: "audio/file_2.mp3"}

	require.NoError(t, NewMediaResolver(files).FetchBytes(context.Background(), media))

	assert.Zero(t, files.pathCalls)
	assert.Equal(t, []string{"audio/file_2.mp3"}, files.downloaded)
}

func TestMediaResolver_EmptyLocationStops(t *testing.T) {
	files := &countingFiles{path: ""}
	media := &entities.Media{FileID: "id"}

	err := NewMediaResolver(files).FetchBytes(context.Background(), media)

	require.ErrorIs(t, err, recerrors.ErrEmptyFileLocation)
	assert.Equal(t, 1, files.pathCalls)
	assert.Zero(t, files.downloadCalls)
	assert.False(t, media.HasContent())
}

func TestMediaResolver_ResolveLocationProviderError(t *testing.T) {
	providerErr := recerrors.NewMessagingProviderError(400, "Bad Request: invalid file_id")
	files := &countingFiles{pathErr: providerErr}
	media := &entities.Media{FileID: "id"}

	err := NewMediaResolver(files).ResolveLocation(context.Background(), media)

	require.ErrorIs(t, err, providerErr)
	assert.False(t, media.HasLocation())
}
