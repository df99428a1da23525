package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
	pkgerrors "github.com/Conte777/songid-bot/pkg/errors"
)

type sentMessage struct {
	chatID    string
	text      string
	parseMode string
}

func newTestBotServer(t *testing.T, sent *[]sentMessage, sendStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok": true, "result": {"id": 1, "is_bot": true, "first_name": "songid"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			*sent = append(*sent, sentMessage{
				chatID:    r.FormValue("chat_id"),
				text:      r.FormValue("text"),
				parseMode: r.FormValue("parse_mode"),
			})
			if sendStatus != http.StatusOK {
				w.WriteHeader(sendStatus)
				_, _ = w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: chat not found"}`))
				return
			}
			_, _ = w.Write([]byte(`{"ok": true, "result": {"message_id": 5, "date": 1555250808, "chat": {"id": 42, "type": "private"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSender_SendMessage(t *testing.T) {
	var sent []sentMessage
	server := newTestBotServer(t, &sent, http.StatusOK)
	defer server.Close()

	bot, err := tgbot.New("test-token", tgbot.WithServerURL(server.URL))
	require.NoError(t, err)

	sender := NewSender(bot, zerolog.Nop())
	require.NoError(t, sender.SendMessage(context.Background(), 42, "<b>Lost - Vosai</b>"))

	require.Len(t, sent, 1)
	assert.Equal(t, "42", sent[0].chatID)
	assert.Equal(t, "<b>Lost - Vosai</b>", sent[0].text)
	assert.Equal(t, "HTML", sent[0].parseMode)
}

func TestSender_SendMessage_Rejected(t *testing.T) {
	var sent []sentMessage
	server := newTestBotServer(t, &sent, http.StatusBadRequest)
	defer server.Close()

	bot, err := tgbot.New("test-token", tgbot.WithServerURL(server.URL))
	require.NoError(t, err)

	err = NewSender(bot, zerolog.Nop()).SendMessage(context.Background(), 42, "hi")
	require.Error(t, err)
	assert.False(t, pkgerrors.IsConnectivityError(err))

	var msgErr *recerrors.MessagingProviderError
	assert.True(t, errors.As(err, &msgErr))
}

func TestSender_SendMessage_EmptyText(t *testing.T) {
	var sent []sentMessage
	server := newTestBotServer(t, &sent, http.StatusOK)
	defer server.Close()

	bot, err := tgbot.New("test-token", tgbot.WithServerURL(server.URL))
	require.NoError(t, err)

	require.Error(t, NewSender(bot, zerolog.Nop()).SendMessage(context.Background(), 42, ""))
	assert.Empty(t, sent)
}
