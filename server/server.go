package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/mux"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"mitosis-arcade/internal/scores"
)

const maxBodyBytes = 1 << 10

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetupRoutes configures HTTP routes. staticDir may be empty.
func SetupRoutes(h *Highscores, limiter *rateLimiter, staticDir string, log *zap.Logger) *mux.Router {
	api := &api{scores: h, limiter: limiter, log: log}

	r := mux.NewRouter()
	r.HandleFunc(scores.Path, api.list).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(scores.Path, api.submit).Methods(http.MethodPost)

	if staticDir != "" {
		fs := http.FileServer(http.Dir(staticDir))
		r.PathPrefix("/").Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-cache")
			fs.ServeHTTP(w, r)
		}))
	}
	return r
}

type api struct {
	scores  *Highscores
	limiter *rateLimiter
	log     *zap.Logger
}

func (a *api) list(w http.ResponseWriter, r *http.Request) {
	ctype := negotiate(r.Header.Get("Accept"))
	body, err := encode(ctype, a.scores.Top())
	if err != nil {
		a.log.Error("encode high scores", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Vary", "Accept")
	if matchETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}

func (a *api) submit(w http.ResponseWriter, r *http.Request) {
	ip := extractIP(r)
	if !a.limiter.Allow(ip) {
		http.Error(w, "too many submissions, try again later", http.StatusTooManyRequests)
		return
	}

	rec, err := decodeRecord(r.Header.Get("Content-Type"), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "malformed score record", http.StatusBadRequest)
		return
	}
	if err := a.scores.Authorize(bearerToken(r), rec); err != nil {
		a.log.Warn("rejected score submission", zap.String("ip", ip), zap.Error(err))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	switch err := a.scores.Submit(rec); {
	case errors.Is(err, scores.ErrInvalidRecord):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "could not save high scores", http.StatusInternalServerError)
		return
	}

	ctype := negotiate(r.Header.Get("Accept"))
	body, err := encode(ctype, rec)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(http.StatusCreated)
	w.Write(body)
}

// negotiate picks msgpack only when the client asks for it; JSON otherwise
func negotiate(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mt == scores.MsgpackType {
			return scores.MsgpackType
		}
	}
	return scores.JSONType
}

func encode(ctype string, v any) ([]byte, error) {
	if ctype == scores.MsgpackType {
		return msgpack.Marshal(v)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(ctype string, body io.Reader) (scores.Record, error) {
	var rec scores.Record
	mt, _, _ := mime.ParseMediaType(ctype)
	if mt == scores.MsgpackType {
		err := msgpack.NewDecoder(body).Decode(&rec)
		return rec, err
	}
	err := json.NewDecoder(body).Decode(&rec)
	return rec, err
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func matchETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		c := strings.TrimSpace(candidate)
		if c == "*" || strings.TrimPrefix(c, "W/") == etag {
			return true
		}
	}
	return false
}
