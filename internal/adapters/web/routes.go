package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

const contentTypeHTML = "text/html; charset=utf-8"

// errorPage is the data behind templates/error.html.
type errorPage struct {
	Code        int
	Title       string
	Description string
	Detail      string
}

var (
	pageNotFound = errorPage{
		Code:  http.StatusNotFound,
		Title: "Not Found",
		Description: "The requested URL was not found on the server. " +
			"If you entered the URL manually please check your spelling and try again.",
	}
	pageMethodNotAllowed = errorPage{
		Code:        http.StatusMethodNotAllowed,
		Title:       "Method Not Allowed",
		Description: "The method is not allowed for the requested URL.",
	}
	pageInternalError = errorPage{
		Code:  http.StatusInternalServerError,
		Title: "Internal Server Error",
		Description: "The server encountered an internal error and was unable to complete your request. " +
			"Either the server is overloaded or there is an error in the application.",
	}
)

// routes registers GET / (and HEAD, answered by the same handler) on a
// router whose 404/405/OPTIONS/panic behavior renders HTML error pages.
func (s *Server) routes() *httprouter.Router {
	r := httprouter.New()
	r.GET("/", s.handleHome)
	r.HEAD("/", s.handleHome)

	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeErrorPage(w, pageNotFound)
	})
	// Allow is already set by the router when this runs.
	r.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeErrorPage(w, pageMethodNotAllowed)
	})
	r.PanicHandler = s.handlePanic
	return r
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, HomeBody)
}

// handlePanic turns a handler panic into a 500. In debug mode the page
// carries the panic value and stack; otherwise only the log does.
func (s *Server) handlePanic(w http.ResponseWriter, r *http.Request, rcv interface{}) {
	stack := debug.Stack()
	s.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"panic":  fmt.Sprint(rcv),
	}).Errorf("handler panicked\n%s", stack)

	page := pageInternalError
	if s.opts.Debug {
		page.Detail = fmt.Sprintf("%v\n\n%s", rcv, stack)
	}
	writeErrorPage(w, page)
}

func writeErrorPage(w http.ResponseWriter, page errorPage) {
	var buf bytes.Buffer
	if err := errorTemplate.Execute(&buf, page); err != nil {
		http.Error(w, http.StatusText(page.Code), page.Code)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(page.Code)
	w.Write(buf.Bytes())
}
