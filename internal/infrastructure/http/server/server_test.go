package server

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestServer_MetricsEndpoint(t *testing.T) {
	srv := NewServer("songid-bot", "0", zerolog.Nop())
	srv.RegisterMetrics()

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/metrics")

	srv.Router.Handler(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "go_goroutines")
}

func TestNewServer_Addr(t *testing.T) {
	srv := NewServer("songid-bot", "8080", zerolog.Nop())
	assert.Equal(t, ":8080", srv.addr)
	assert.Equal(t, "songid-bot", srv.server.Name)
}
