package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// optionalUint parses an optional unsigned query parameter.
func optionalUint(c echo.Context, name string) (*uint64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// uintList parses a comma separated id list, skipping blanks.
func uintList(raw string) ([]uint64, error) {
	var out []uint64
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
