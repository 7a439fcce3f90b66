// Package handlers contains the HTTP controllers: translate request
// payloads into service calls and format the JSON envelope. All business
// rules live in services; anything here beyond parsing is plain CRUD.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arahmani/freelance-ops/internal/services"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, services.BadRequest("Invalid id")
	}
	return uint(id), nil
}

// pageQuery reads page/limit query params, leaving defaults to the service.
func pageQuery(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return services.BadRequest("Invalid JSON body")
	}
	return nil
}
