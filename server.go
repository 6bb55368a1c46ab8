package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

const (
	maxUploadBytes  = 100 << 20 // 100MB cap on uploads
	storeCapacity   = 128
	uploadFormField = "file"
)

// uploadResponse is the wire shape returned after a successful upload: the
// stored record id plus the full processing output.
type uploadResponse struct {
	ID int64 `json:"id"`
	*ProcessedOutput
}

// apiServer wires the upload and result-replay handlers around the pipeline.
// The pipeline itself holds no shared state, so concurrent uploads only
// contend on the result store.
type apiServer struct {
	store *ResultStore
}

func newAPIServer() (*apiServer, error) {
	store, err := NewResultStore(storeCapacity)
	if err != nil {
		return nil, err
	}
	return &apiServer{store: store}, nil
}

func buildMux(s *apiServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/process", s.handleProcess)
	mux.HandleFunc("/api/results/", s.handleResult)
	return mux
}

// runServer starts the upload server and blocks until it fails.
func runServer(addr string) error {
	server, err := newAPIServer()
	if err != nil {
		return err
	}
	fmt.Printf("Listening on %s\n", addr)
	return http.ListenAndServe(addr, buildMux(server))
}

// handleProcess accepts a multipart ZIP upload, runs the pipeline, stores the
// result, and responds with the ProcessedOutput JSON.
func (s *apiServer) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Sprintf("cannot parse upload: %v", err))
		return
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		httpError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !acceptableUploadType(header.Header.Get("Content-Type"), header.Filename) {
		httpError(w, http.StatusUnsupportedMediaType, "only ZIP archives are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		httpError(w, http.StatusBadRequest, fmt.Sprintf("cannot read upload: %v", err))
		return
	}

	entries, err := entriesFromZipBytes(data)
	if err != nil {
		httpError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	output, _, err := processArchive(entries, int64(len(data)))
	if err != nil {
		httpError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id := s.store.Put(header.Filename, output)
	writeJSON(w, http.StatusOK, uploadResponse{ID: id, ProcessedOutput: output})
}

// handleResult replays a previously stored result by id.
func (s *apiServer) handleResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	idText := strings.TrimPrefix(r.URL.Path, "/api/results/")
	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid result id")
		return
	}

	record, ok := s.store.Get(id)
	if !ok {
		httpError(w, http.StatusNotFound, "result not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// acceptableUploadType gates uploads on ZIP-like content types, falling back
// to the filename when the client sent a generic type.
func acceptableUploadType(contentType, filename string) bool {
	switch contentType {
	case "application/zip", "application/x-zip-compressed", "multipart/x-zip":
		return true
	case "", "application/octet-stream":
		return isArchivePath(filename)
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to encode response: %v\n", err)
	}
}

func httpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
