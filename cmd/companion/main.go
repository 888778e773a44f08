// Command companion is the small local HTTP endpoint the desktop shell talks
// to. It answers ping-style requests with short text payloads; it does not
// expose the extraction pipeline or the similarity engine.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wudi/ocrkit/observability"
)

const version = "0.3.0"

func main() {
	addr := flag.String("addr", "127.0.0.1:8750", "Listen address")
	flag.Parse()

	logger := observability.NewWriterLogger(os.Stderr)
	logger.Info("companion listening", observability.String("addr", *addr))
	if err := http.ListenAndServe(*addr, newRouter()); err != nil {
		fmt.Fprintf(os.Stderr, "companion: %v\n", err)
		os.Exit(1)
	}
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "pong")
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, version)
	})
	return r
}
