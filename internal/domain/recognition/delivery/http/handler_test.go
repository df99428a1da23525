package http

import (
	"context"
	"errors"
	"testing"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/Conte777/songid-bot/internal/infrastructure/metrics"
)

type recordingQueue struct {
	pushed [][]byte
	err    error
}

func (q *recordingQueue) Push(_ context.Context, raw []byte) error {
	if q.err != nil {
		return q.err
	}
	q.pushed = append(q.pushed, raw)
	return nil
}

func (q *recordingQueue) Pop(_ context.Context) ([]byte, error) {
	return nil, errors.New("not used")
}

func newRequest(method, path, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	ctx.Request.SetBodyString(body)
	return ctx
}

func newTestRouter(q *recordingQueue) *router.Router {
	handler := NewWebhookHandler(q, metrics.GetDefaultMetrics(), zerolog.Nop())
	rt := router.New()
	NewRouter(handler, "123:abc", zerolog.Nop()).RegisterRoutes(rt)
	return rt
}

func TestWebhook_EnqueuesUpdate(t *testing.T) {
	q := &recordingQueue{}
	rt := newTestRouter(q)

	ctx := newRequest(fasthttp.MethodPost, "/bot/123:abc", `{"update_id": 1}`)
	rt.Handler(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
	require.Len(t, q.pushed, 1)
	assert.Equal(t, `{"update_id": 1}`, string(q.pushed[0]))
}

func TestWebhook_AlwaysOK(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		pushes int
	}{
		{name: "malformed document is still accepted", body: `{"update_id": `, pushes: 1},
		{name: "empty body", body: "", pushes: 0},
		{name: "queue failure", body: `{"update_id": 2}`, err: errors.New("redis down"), pushes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &recordingQueue{err: tt.err}
			ctx := newRequest(fasthttp.MethodPost, "/bot/123:abc", tt.body)
			newTestRouter(q).Handler(ctx)

			assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
			assert.Empty(t, ctx.Response.Body())
			assert.Len(t, q.pushed, tt.pushes)
		})
	}
}

func TestWebhook_WrongTokenNotRouted(t *testing.T) {
	q := &recordingQueue{}
	ctx := newRequest(fasthttp.MethodPost, "/bot/other-token", `{"update_id": 1}`)
	newTestRouter(q).Handler(ctx)

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	assert.Empty(t, q.pushed)
}

func TestHealth(t *testing.T) {
	ctx := newRequest(fasthttp.MethodGet, "/health", "")
	newTestRouter(&recordingQueue{}).Handler(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status": "ok"}`, string(ctx.Response.Body()))
}
