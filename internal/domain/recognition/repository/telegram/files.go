// Package telegram contains Telegram Bot API adapters for the recognition domain
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Conte777/songid-bot/config"
	"github.com/Conte777/songid-bot/internal/domain/recognition/dto"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
	pkgerrors "github.com/Conte777/songid-bot/pkg/errors"
)

// FileClient calls getFile and downloads files from the Telegram file server.
// It talks HTTP directly so that Telegram error codes reach the caller intact.
type FileClient struct {
	client  *http.Client
	baseURL string
	token   string
	logger  zerolog.Logger
}

// NewFileClient creates a new FileClient
func NewFileClient(cfg *config.TelegramConfig, client *http.Client, logger zerolog.Logger) *FileClient {
	return &FileClient{
		client:  client,
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		token:   cfg.BotToken,
		logger:  logger.With().Str("component", "telegram-files").Logger(),
	}
}

// GetFilePath implements deps.FileProvider interface
func (c *FileClient) GetFilePath(ctx context.Context, fileID string) (string, error) {
	endpoint := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", c.baseURL, c.token, url.QueryEscape(fileID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build getFile request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", pkgerrors.NewConnectivityError(recerrors.StageGetFile, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pkgerrors.NewConnectivityError(recerrors.StageGetFile, err)
	}

	var result dto.GetFileResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", recerrors.NewMessagingProviderError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if !result.OK {
		c.logger.Debug().
			Int("error_code", result.ErrorCode).
			Str("description", result.Description).
			Msg("getFile rejected")
		return "", recerrors.NewMessagingProviderError(result.ErrorCode, result.Description)
	}

	if result.Result == nil {
		return "", nil
	}

	return result.Result.FilePath, nil
}

// Download implements deps.FileProvider interface
func (c *FileClient) Download(ctx context.Context, path string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, strings.TrimLeft(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewConnectivityError(recerrors.StageDownloadFile, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.NewConnectivityError(recerrors.StageDownloadFile, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.GetFileResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.ErrorCode != 0 {
			return nil, recerrors.NewMessagingProviderError(apiErr.ErrorCode, apiErr.Description)
		}
		return nil, recerrors.NewMessagingProviderError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	c.logger.Debug().Int("bytes", len(body)).Msg("File downloaded")

	return body, nil
}
