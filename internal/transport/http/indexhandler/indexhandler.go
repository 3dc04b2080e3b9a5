package indexhandler

import (
	_ "embed"

	"github.com/devchain-network/gitfeed/internal/transport/http/httphandler"
	"github.com/valyala/fasthttp"
)

//go:embed index.html
var indexPage []byte

var _ IndexHandler = (*Handler)(nil) // compile time proof

// IndexHandler defines http handler behaviours.
type IndexHandler interface {
	httphandler.FastHTTPHandler
}

// Handler serves the polling ui page. Must satisfy IndexHandler interface.
type Handler struct{}

// Handle is a fasthttp handler function.
func (h Handler) Handle(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(indexPage)
}

// New instantiates new handler instance.
func New() *Handler {
	return new(Handler)
}
