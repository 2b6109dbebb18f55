package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/carbocation/gwastrack/chrpos"
	"github.com/carbocation/gwastrack/gwas"
	"github.com/gorilla/mux"
)

type handler struct {
	*Global
	router *mux.Router
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	trackURL, err := h.router.Get("track").URL()
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s\n\nDefault region: %s\nRender with %s?region=chr1:1,000,000-2,000,000\n", h.Site, h.figure.Locus(), trackURL)
}

func (h *handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (h *handler) Goroutines(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "There are %d goroutines running\n", runtime.NumGoroutine())
}

// requestLocus returns the figure's configured window unless the request
// names another one in ?region=.
func (h *handler) requestLocus(r *http.Request) (chrpos.Locus, error) {
	region := r.URL.Query().Get("region")
	if region == "" {
		return h.figure.Locus(), nil
	}

	locus, err := chrpos.ParseLocus(region)
	if err != nil {
		return locus, &gwas.ConfigError{Option: "region", Value: region, Err: err}
	}

	return locus, nil
}

func (h *handler) TrackPNG(w http.ResponseWriter, r *http.Request) {
	locus, err := h.requestLocus(r)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	// Render into a buffer so that a failure can still produce an error
	// status.
	var buf bytes.Buffer
	reports, err := h.figure.RenderPNG(r.Context(), &buf, locus)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	for _, report := range reports {
		if report.Err != nil {
			h.log.Println("Skipped track", report.File, ":", report.Err)
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	_, _ = buf.WriteTo(w)
}

type trackSummary struct {
	File      string
	Records   int
	Base      int
	Highlight int
	Labels    int
	YMin      float64
	YMax      float64
	Warnings  []string
	Error     string `json:",omitempty"`
}

// TrackJSON renders the figure like TrackPNG but reports what each track
// drew instead of returning the image.
func (h *handler) TrackJSON(w http.ResponseWriter, r *http.Request) {
	locus, err := h.requestLocus(r)
	if err != nil {
		JSONError(h, w, r, err)
		return
	}

	_, reports, err := h.figure.Render(r.Context(), locus)
	if err != nil {
		JSONError(h, w, r, err)
		return
	}

	output := struct {
		Success bool
		Region  string
		Tracks  []trackSummary
	}{
		Success: true,
		Region:  locus.String(),
	}

	for _, report := range reports {
		summary := trackSummary{
			File:      report.File,
			Records:   report.Result.Records,
			Base:      report.Result.Base,
			Highlight: report.Result.Highlight,
			Labels:    report.Result.Labels,
			YMin:      report.Result.YMin,
			YMax:      report.Result.YMax,
			Warnings:  report.Result.Warnings,
		}
		if report.Err != nil {
			summary.Error = report.Err.Error()
		}
		output.Tracks = append(output.Tracks, summary)
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(output); err != nil {
		h.log.Println(err)
	}
}
