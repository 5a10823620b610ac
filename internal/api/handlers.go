package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultPageSize = 100

type versionResponse struct {
	Version string
}

type serverResponse struct {
	Name string
}

type keysResponse struct {
	Keys       []string
	Page       int
	PagesCount int
}

func (s *Server) getAppVersion(w http.ResponseWriter, r *http.Request) (any, error) {
	return versionResponse{Version: s.version}, nil
}

func (s *Server) getServers(w http.ResponseWriter, r *http.Request) (any, error) {
	names := s.store.Servers()
	servers := make([]serverResponse, 0, len(names))
	for _, name := range names {
		servers = append(servers, serverResponse{Name: name})
	}
	return servers, nil
}

// getKeys returns one page of keys matching the mask query parameter
func (s *Server) getKeys(w http.ResponseWriter, r *http.Request) (any, error) {
	server := urlParam(r, "server")
	if server == "" {
		return nil, NewBadRequestError("'server' param is mandatory")
	}

	mask := r.URL.Query().Get("mask")
	if mask == "" {
		mask = "*"
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, NewBadRequestError("'page' must be a positive number")
		}
		page = parsed
	}

	keys, err := s.store.Keys(r.Context(), server, mask)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * s.pageSize
	if start > len(keys) || (start == len(keys) && page > 1) {
		return nil, NewNotFoundError("page not found")
	}
	end := start + s.pageSize
	if end > len(keys) {
		end = len(keys)
	}

	return keysResponse{
		Keys:       keys[start:end],
		Page:       page,
		PagesCount: int(math.Ceil(float64(len(keys)) / float64(s.pageSize))),
	}, nil
}

func (s *Server) deleteKey(w http.ResponseWriter, r *http.Request) (any, error) {
	server := urlParam(r, "server")
	if server == "" {
		return nil, NewBadRequestError("'server' param is required")
	}
	key := urlParam(r, "key")
	if key == "" {
		return nil, NewBadRequestError("'key' param is required")
	}

	if err := s.store.Delete(r.Context(), server, key); err != nil {
		return nil, err
	}
	return "", nil
}

// urlParam returns a decoded route parameter. chi matches on the raw path
// when the request carried escaped separators.
func urlParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}
