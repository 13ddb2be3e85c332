package routemanager

import (
	"github.com/fasthttp/routemanager/statetree"
	"github.com/savsgio/gotils/strconv"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// FallbackHeader is set on responses of locations resolved to the 404 state.
const FallbackHeader = "X-Route-Fallback"

var (
	defaultContentType = []byte("text/plain; charset=utf-8")
	allowedMethods     = fasthttp.MethodGet + ", " + fasthttp.MethodHead
)

// Handler makes the manager a fasthttp.RequestHandler: the request path is a
// location change notification. The response lists the exited and entered
// states and the merged params. Unmatched locations answer 404 and leave the
// active chain untouched.
func (m *Manager) Handler(ctx *fasthttp.RequestCtx) {
	method := strconv.B2S(ctx.Method())
	if method != fasthttp.MethodGet && method != fasthttp.MethodHead {
		ctx.Response.Header.Set("Allow", allowedMethods)
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		ctx.SetContentTypeBytes(defaultContentType)
		ctx.SetBodyString(fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed))

		return
	}

	// The location outlives the request, so it must not alias its buffers.
	location := string(ctx.Path())

	res, ok := m.SetLocationContext(ctx, location)
	if !ok {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)

		return
	}

	if res.Outcome == statetree.NotFound {
		ctx.Response.Header.Set(FallbackHeader, "1")
	}

	buf := bytebufferpool.Get()
	writeResult(buf, res)

	ctx.SetContentTypeBytes(defaultContentType)
	ctx.SetBody(buf.B)

	bytebufferpool.Put(buf)
}
