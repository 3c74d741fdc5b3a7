package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/harshalkoli/3d-sphere/volume"
)

func writeFileHeaders(w http.ResponseWriter, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	if name != "" {
		w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	}
}

func writeResult(w http.ResponseWriter, data []byte) {
	if _, err := w.Write(data); err != nil {
		log.Printf("[web] Error when writing response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeResult(w, data)
}

// writeError answers 400 for caller mistakes and 500 otherwise.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var be badRequest
	if errors.Is(err, volume.ErrInvalidDimension) || errors.As(err, &be) {
		status = http.StatusBadRequest
	}
	log.Printf("[web] HERR %d: %v", status, err)
	type jError struct {
		Error string `json:"error"`
	}
	data, _ := json.Marshal(&jError{Error: err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeResult(w, data)
}

type badRequest struct{ error }

func queryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, badRequest{err}
	}
	return v, nil
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, badRequest{err}
	}
	return v, nil
}

func formatChecksum(sum uint64) string { return fmt.Sprintf("%016x", sum) }
