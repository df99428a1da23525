// Package acrcloud contains the ACRCloud identify API adapter
package acrcloud

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/songid-bot/config"
	"github.com/Conte777/songid-bot/internal/domain/recognition/dto"
	recerrors "github.com/Conte777/songid-bot/internal/domain/recognition/errors"
	pkgerrors "github.com/Conte777/songid-bot/pkg/errors"
)

const (
	identifyPath     = "/v1/identify"
	dataType         = "audio"
	signatureVersion = "1"
)

// Client submits samples to the ACRCloud identify endpoint
type Client struct {
	client       *http.Client
	endpoint     string
	accessKey    string
	accessSecret string
	sampler      *SampleExtractor
	logger       zerolog.Logger
	now          func() time.Time
}

// NewClient creates a new ACRCloud client.
// The configured timeout bounds connecting and waiting for response headers.
func NewClient(cfg *config.RecognitionConfig, sampler *SampleExtractor, logger zerolog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: cfg.Timeout}).DialContext
	transport.ResponseHeaderTimeout = cfg.Timeout

	return &Client{
		client:       &http.Client{Transport: transport},
		endpoint:     identifyURL(cfg.Host),
		accessKey:    cfg.AccessKey,
		accessSecret: cfg.AccessSecret,
		sampler:      sampler,
		logger:       logger.With().Str("component", "acrcloud").Logger(),
		now:          time.Now,
	}
}

// identifyURL accepts a bare host or a full base URL
func identifyURL(host string) string {
	host = strings.TrimRight(host, "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return host + identifyPath
}

// Recognize implements deps.Recognizer interface
func (c *Client) Recognize(ctx context.Context, data []byte, offset int) (*dto.RecognitionResult, error) {
	sample := c.sampler.Extract(ctx, data, offset)

	body, contentType, err := c.buildForm(sample)
	if err != nil {
		return nil, fmt.Errorf("failed to build identify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build identify request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewConnectivityError(recerrors.StageRecognize, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.NewConnectivityError(recerrors.StageRecognize, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &recerrors.RecognitionProviderError{
			Kind:    recerrors.RecognitionService,
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("Recognition service responded with HTTP %d", resp.StatusCode),
		}
	}

	var result dto.RecognitionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &recerrors.RecognitionProviderError{
			Kind:    recerrors.RecognitionUnknown,
			Message: "Malformed response from recognition service",
		}
	}

	c.logger.Debug().
		Int("status_code", result.Status.Code).
		Str("status_msg", result.Status.Msg).
		Int("sample_bytes", len(sample)).
		Msg("Identify completed")

	return &result, nil
}

func (c *Client) buildForm(sample []byte) (*bytes.Buffer, string, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"access_key", c.accessKey},
		{"sample_bytes", strconv.Itoa(len(sample))},
		{"timestamp", timestamp},
		{"signature", Sign(c.accessSecret, c.accessKey, timestamp)},
		{"data_type", dataType},
		{"signature_version", signatureVersion},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("sample", "sample")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(sample); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// Sign computes the identify request signature
func Sign(secret, accessKey, timestamp string) string {
	toSign := strings.Join([]string{
		http.MethodPost,
		identifyPath,
		accessKey,
		dataType,
		signatureVersion,
		timestamp,
	}, "\n")

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(toSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
