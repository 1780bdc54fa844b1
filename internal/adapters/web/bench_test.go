package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func quietServer(engine Engine) *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(Options{Engine: engine, Logger: log})
}

func BenchmarkHome_Handler(b *testing.B) {
	h := quietServer(EngineNetHTTP).Handler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("status %d", rec.Code)
		}
	}
}

func BenchmarkNotFound_Handler(b *testing.B) {
	h := quietServer(EngineNetHTTP).Handler()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
	}
}

func BenchmarkHome_NetHTTP(b *testing.B) {
	ts := httptest.NewServer(quietServer(EngineNetHTTP).Handler())
	defer ts.Close()
	client := ts.Client()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := client.Get(ts.URL + "/")
		if err != nil {
			b.Fatal(err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

func BenchmarkHome_FastHTTP(b *testing.B) {
	srv := quietServer(EngineFastHTTP)
	ln := fasthttputil.NewInmemoryListener()
	if err := srv.Serve(ln); err != nil {
		b.Fatal(err)
	}
	defer srv.Stop(context.Background())

	client := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) { return ln.Dial() },
	}
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)
	req.SetRequestURI("http://demoapp/")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := client.Do(req, resp); err != nil {
			b.Fatal(err)
		}
		if resp.StatusCode() != fasthttp.StatusOK {
			b.Fatalf("status %d", resp.StatusCode())
		}
	}
}
