package routemanager

import (
	"bufio"
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/fasthttp/routemanager/statetree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type readWriter struct {
	net.Conn
	r bytes.Buffer
	w bytes.Buffer
}

var zeroTCPAddr = &net.TCPAddr{
	IP: net.IPv4zero,
}

func (rw *readWriter) Close() error {
	return nil
}

func (rw *readWriter) Read(b []byte) (int, error) {
	return rw.r.Read(b)
}

func (rw *readWriter) Write(b []byte) (int, error) {
	return rw.w.Write(b)
}

func (rw *readWriter) RemoteAddr() net.Addr {
	return zeroTCPAddr
}

func (rw *readWriter) LocalAddr() net.Addr {
	return zeroTCPAddr
}

func (rw *readWriter) SetReadDeadline(t time.Time) error {
	return nil
}

func (rw *readWriter) SetWriteDeadline(t time.Time) error {
	return nil
}

type assertFn func(resp *fasthttp.Response)

func assertWithTestServer(t *testing.T, request string, handler fasthttp.RequestHandler, fn assertFn) {
	t.Helper()

	s := &fasthttp.Server{
		Handler: handler,
	}

	rw := &readWriter{}
	ch := make(chan error)

	rw.r.WriteString(request)
	go func() {
		ch <- s.ServeConn(rw)
	}()
	select {
	case err := <-ch:
		if err != nil {
			t.Fatalf("return error %s", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout")
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	require.NoError(t, resp.Read(bufio.NewReader(&rw.w)))

	fn(resp)
}

func newBlogManager() *Manager {
	m := New()
	m.Add(
		statetree.NewState("posts", statetree.Route("posts")).Add(
			statetree.NewState("post", statetree.Route(":postId")).Add(
				statetree.NewState("show", statetree.Pathless()),
				statetree.NewState("comments", statetree.Route("comments")),
			),
		),
		statetree.NewState(statetree.NotFoundName, statetree.Pathless()),
	)

	return m
}

func TestHandler(t *testing.T) {
	m := newBlogManager()

	assertWithTestServer(t, "GET /posts/1/comments HTTP/1.1\r\n\r\n", m.Handler, func(resp *fasthttp.Response) {
		assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
		assert.Equal(t, "text/plain; charset=utf-8", string(resp.Header.ContentType()))
		assert.Empty(t, resp.Header.Peek(FallbackHeader))
		assert.Equal(t, "enter posts\nenter posts.post\nenter posts.post.comments\nparam postId=1\n", string(resp.Body()))
	})

	assertWithTestServer(t, "GET /posts/2 HTTP/1.1\r\n\r\n", m.Handler, func(resp *fasthttp.Response) {
		assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
		assert.Equal(t, "exit posts.post.comments\nexit posts.post\nenter posts.post\nenter posts.post.show\nparam postId=2\n", string(resp.Body()))
	})

	assert.Equal(t, "/posts/2", m.Location())
	assert.Equal(t, m.Find("posts.post.show"), m.CurrentState())
}

func TestHandlerNotFoundState(t *testing.T) {
	m := newBlogManager()

	assertWithTestServer(t, "GET /nope HTTP/1.1\r\n\r\n", m.Handler, func(resp *fasthttp.Response) {
		assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
		assert.Equal(t, "1", string(resp.Header.Peek(FallbackHeader)))
		assert.Equal(t, "enter 404\n", string(resp.Body()))
	})
}

func TestHandlerUnmatched(t *testing.T) {
	m := New()
	m.Add(statetree.NewState("a", statetree.Route("a")))

	assertWithTestServer(t, "GET /a HTTP/1.1\r\n\r\n", m.Handler, func(resp *fasthttp.Response) {
		assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	})

	assertWithTestServer(t, "GET /b HTTP/1.1\r\n\r\n", m.Handler, func(resp *fasthttp.Response) {
		assert.Equal(t, fasthttp.StatusNotFound, resp.StatusCode())
	})

	assert.Equal(t, m.Find("a"), m.CurrentState())
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	m := newBlogManager()

	assertWithTestServer(t, "POST /posts/1 HTTP/1.1\r\nContent-Length: 0\r\n\r\n", m.Handler, func(resp *fasthttp.Response) {
		assert.Equal(t, fasthttp.StatusMethodNotAllowed, resp.StatusCode())
		assert.Equal(t, "GET, HEAD", string(resp.Header.Peek("Allow")))
		assert.Equal(t, "Method Not Allowed", string(resp.Body()))
	})

	assert.Nil(t, m.Chain())
}
