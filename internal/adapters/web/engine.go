package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// engine is the server loop behind a Server. Both implementations serve
// the same http.Handler, so routing behaves identically on either.
type engine interface {
	serve() error
	shutdown(ctx context.Context) error
}

func newEngine(opts Options, h http.Handler, ln net.Listener) (engine, error) {
	switch opts.Engine {
	case EngineNetHTTP, "":
		return &netEngine{ln: ln, srv: &http.Server{
			Handler:      h,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		}}, nil
	case EngineFastHTTP:
		return &fastEngine{ln: &onceCloseListener{Listener: ln}, srv: &fasthttp.Server{
			Handler:      fasthttpadaptor.NewFastHTTPHandler(h),
			Name:         "demoapp",
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		}}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", opts.Engine)
	}
}

type netEngine struct {
	ln  net.Listener
	srv *http.Server
}

func (e *netEngine) serve() error {
	return e.srv.Serve(e.ln)
}

func (e *netEngine) shutdown(ctx context.Context) error {
	return e.srv.Shutdown(ctx)
}

type fastEngine struct {
	ln  net.Listener
	srv *fasthttp.Server
}

func (e *fastEngine) serve() error {
	return e.srv.Serve(e.ln)
}

// shutdown closes the listener itself as well: fasthttp only closes
// listeners its Serve loop has already registered.
func (e *fastEngine) shutdown(ctx context.Context) error {
	err := e.srv.ShutdownWithContext(ctx)
	if cerr := e.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
		err = errors.Join(err, cerr)
	}
	return err
}

// onceCloseListener lets fasthttp and shutdown both close the listener.
type onceCloseListener struct {
	net.Listener
	once sync.Once
	err  error
}

func (l *onceCloseListener) Close() error {
	l.once.Do(func() { l.err = l.Listener.Close() })
	return l.err
}
