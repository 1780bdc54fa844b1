package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

const (
	// HomeBody is returned verbatim by GET /.
	HomeBody = "<h1>Demo Flask App V2</h1>"

	// DefaultHost binds every interface.
	DefaultHost = "0.0.0.0"
	// DefaultPort is the port the server listens on when none is configured.
	DefaultPort = 5000
)

// Engine selects the HTTP server implementation behind the route table.
type Engine string

const (
	// EngineNetHTTP serves with net/http.
	EngineNetHTTP Engine = "nethttp"
	// EngineFastHTTP serves with valyala/fasthttp through fasthttpadaptor.
	EngineFastHTTP Engine = "fasthttp"
)

// Options configures a Server. Zero timeouts leave the engine defaults.
type Options struct {
	Host   string
	Port   int
	Engine Engine
	Debug  bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Logger *logrus.Logger
}

// Server serves the greeting route on the configured engine.
type Server struct {
	opts     Options
	log      *logrus.Logger
	router   *httprouter.Router
	handler  http.Handler
	engine   engine
	listener net.Listener
	errCh    chan error
	started  time.Time
	stopOnce sync.Once
}

// NewServer builds the route table. It does not listen; call Start.
func NewServer(opts Options) *Server {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Engine == "" {
		opts.Engine = EngineNetHTTP
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{
		opts:  opts,
		log:   log,
		errCh: make(chan error, 1),
	}
	s.router = s.routes()
	s.handler = accessLog(log, s.router)
	return s
}

// Handler returns the route table wrapped with access logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds host:port and serves in the background. Bind errors are
// returned immediately; later serve errors arrive on Err.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener in the background.
func (s *Server) Serve(ln net.Listener) error {
	eng, err := newEngine(s.opts, s.handler, ln)
	if err != nil {
		ln.Close()
		return err
	}
	s.engine = eng
	s.listener = ln
	s.started = time.Now()

	s.logStartup()

	go func() {
		if err := eng.serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errCh <- fmt.Errorf("serve %s: %w", ln.Addr(), err)
		}
	}()
	return nil
}

// Err delivers a serve failure. It never fires after a clean Stop.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Stop gracefully shuts down the server. Idempotent.
func (s *Server) Stop(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		if s.engine == nil {
			return
		}
		err = s.engine.shutdown(ctx)
		s.log.WithField("uptime", time.Since(s.started).Round(time.Second).String()).Info("server stopped")
	})
	return err
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

// Port returns the bound port number.
func (s *Server) Port() int {
	if s.listener != nil {
		if a, ok := s.listener.Addr().(*net.TCPAddr); ok {
			return a.Port
		}
	}
	return s.opts.Port
}

// URL returns a dialable URL for the server.
func (s *Server) URL() string {
	host := s.opts.Host
	if isWildcard(host) {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.Itoa(s.Port())))
}

// logStartup mirrors the development server banner: one line per
// reachable address when bound to every interface.
func (s *Server) logStartup() {
	entry := s.log.WithFields(logrus.Fields{
		"engine": s.opts.Engine,
		"debug":  s.opts.Debug,
	})
	port := s.Port()
	if isWildcard(s.opts.Host) {
		entry.Infof("Running on all addresses (%s)", s.opts.Host)
		for _, ip := range reachableIPs() {
			entry.Infof("Running on http://%s", net.JoinHostPort(ip, strconv.Itoa(port)))
		}
	} else {
		entry.Infof("Running on %s", s.URL())
	}
	if s.opts.Debug && !isLoopback(s.opts.Host) {
		entry.Warn("debug mode is on and the server is reachable from the network; do not use it in production")
	}
}

func isWildcard(host string) bool {
	return host == "" || host == "0.0.0.0" || host == "::"
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// reachableIPs lists loopback first, then the first non-loopback IPv4.
func reachableIPs() []string {
	ips := []string{"127.0.0.1"}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ips
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		return append(ips, ipNet.IP.String())
	}
	return ips
}
