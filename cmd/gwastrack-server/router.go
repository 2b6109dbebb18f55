package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/interpose/middleware"
	"github.com/justinas/alice"
)

func router(config *Global) http.Handler {
	router := mux.NewRouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	h := handler{Global: config, router: router}

	GET.HandleFunc("/", h.Index).Name("index")
	GET.HandleFunc("/healthz", h.Healthz)
	GET.HandleFunc("/goroutines", h.Goroutines)
	GET.HandleFunc("/track.png", h.TrackPNG).Name("track")
	GET.HandleFunc("/track.json", h.TrackJSON).Name("trackjson")

	standard := alice.New(
		// Log all requests to STDOUT
		middleware.GorillaLog(),
		requestID,
	)

	return standard.Then(router)
}

const requestIDHeader = "X-Request-Id"

// requestID tags every response with an ID, reusing the caller's if given, so
// that logged errors can be matched to requests.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}
