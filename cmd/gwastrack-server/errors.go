package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carbocation/gwastrack/gwas"
)

func JSONError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	w.Header().Set("Content-Type", "application/json")
	unifiedError(h, w, r, err, code...)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(struct {
		Success bool
		Message string
	}{
		false,
		err.Error(),
	})
}

func HTTPError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	unifiedError(h, w, r, err, code...)
	_, _ = w.Write([]byte(err.Error() + "\n"))
}

func unifiedError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	usedCode := statusFor(err)
	if len(code) > 0 {
		usedCode = code[0]
	}
	w.WriteHeader(usedCode)
	h.log.Println(r.Header.Get(requestIDHeader), r.Host, r.URL.Path, ":", usedCode, err)
}

// statusFor maps track errors onto HTTP status codes. Data that cannot be
// drawn is the server's problem, a bad option is the caller's.
func statusFor(err error) int {
	var cfgErr *gwas.ConfigError
	var schemaErr *gwas.SchemaError
	var numErr *gwas.NumericError

	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case errors.As(err, &schemaErr), errors.As(err, &numErr):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}
