package http

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/spf13/cast"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/usecase/command"
)

// pathID reads a numeric path variable.
func pathID(r *http.Request, name string) (uint, error) {
	id, err := parseID(mux.Vars(r)[name])
	if err != nil || id == 0 {
		return 0, domain.NewInvalidArgumentError(name, "invalid id")
	}
	return id, nil
}

// optionalUint returns nil for an absent or blank query parameter.
func optionalUint(r *http.Request, name string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := parseID(raw)
	if err != nil {
		return nil, domain.NewInvalidArgumentError(name, "not an id: "+raw)
	}
	return &v, nil
}

func optionalInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := command.ParseDecimal(raw)
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		return nil, domain.NewInvalidArgumentError(name, "not an integer: "+raw)
	}
	n := int(v)
	return &n, nil
}

func optionalFloat(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, domain.NewInvalidArgumentError(name, "not a number: "+raw)
	}
	return &v, nil
}

// idList parses "1,2,3". Repeated parameters are accepted too.
func idList(r *http.Request, name string) ([]uint, error) {
	ids := []uint{}
	for _, value := range r.URL.Query()[name] {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, domain.NewInvalidArgumentError(name, "not an id: "+part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// parseID accepts unsigned base-10 ids only.
func parseID(raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// decodeFields reads a JSON object body.
func decodeFields(r *http.Request) (command.Fields, error) {
	fields := command.Fields{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, domain.NewInvalidArgumentError("body", "invalid JSON object")
	}
	return fields, nil
}
