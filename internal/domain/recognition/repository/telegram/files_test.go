package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/songid-bot/config"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
	pkgerrors "github.com/Conte777/songid-bot/pkg/errors"
)

func newTestFileClient(url string) *FileClient {
	cfg := &config.TelegramConfig{BotToken: "test-token", APIURL: url}
	return NewFileClient(cfg, http.DefaultClient, zerolog.Nop())
}

func TestFileClient_GetFilePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getFile", r.URL.Path)
		assert.Equal(t, "voice-id", r.URL.Query().Get("file_id"))
		_, _ = w.Write([]byte(`{"ok": true, "result": {"file_id": "voice-id", "file_unique_id": "u", "file_size": 3, "file_path": "voice/file_1.oga"}}`))
	}))
	defer server.Close()

	path, err := newTestFileClient(server.URL).GetFilePath(context.Background(), "voice-id")
	require.NoError(t, err)
	assert.Equal(t, "voice/file_1.oga", path)
}

func TestFileClient_GetFilePath_ProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   recerrors.MessagingKind
		desc   string
	}{
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"ok": false, "error_code": 400, "description": "Bad Request: invalid file_id"}`,
			kind:   recerrors.MessagingBadRequest,
			desc:   "Bad Request: invalid file_id",
		},
		{
			name:   "flood",
			status: 420,
			body:   `{"ok": false, "error_code": 420, "description": "Flood control exceeded"}`,
			kind:   recerrors.MessagingFlood,
			desc:   "Flood control exceeded",
		},
		{
			name:   "unmapped code",
			status: http.StatusConflict,
			body:   `{"ok": false, "error_code": 409, "description": "Conflict"}`,
			kind:   recerrors.MessagingUnknown,
			desc:   "Conflict",
		},
		{
			name:   "not json",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			kind:   recerrors.MessagingUnknown,
			desc:   "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestFileClient(server.URL).GetFilePath(context.Background(), "id")

			var msgErr *recerrors.MessagingProviderError
			require.True(t, errors.As(err, &msgErr))
			assert.Equal(t, tt.kind, msgErr.Kind)
			assert.Equal(t, tt.desc, msgErr.Error())
		})
	}
}

func TestFileClient_GetFilePath_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestFileClient(url).GetFilePath(context.Background(), "id")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConnectivityError(err))
	assert.Equal(t, recerrors.StageGetFile, err.Error())
}

func TestFileClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/file/bottest-token/voice/file_1.oga" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"ok": false, "error_code": 404, "description": "Not Found"}`))
			return
		}
		_, _ = w.Write([]byte("OggS"))
	}))
	defer server.Close()

	client := newTestFileClient(server.URL)

	data, err := client.Download(context.Background(), "voice/file_1.oga")
	require.NoError(t, err)
	assert.Equal(t, []byte("OggS"), data)

	_, err = client.Download(context.Background(), "missing.oga")
	var msgErr *recerrors.MessagingProviderError
	require.True(t, errors.As(err, &msgErr))
	assert.Equal(t, recerrors.MessagingNotFound, msgErr.Kind)
}

func TestFileClient_Download_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestFileClient(url).Download(context.Background(), "voice/file_1.oga")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConnectivityError(err))
	assert.Equal(t, recerrors.StageDownloadFile, err.Error())
}
