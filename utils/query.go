package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Page is a clamped limit/offset pair read from the query string.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset, clamping limit to [1, max] and offset to >= 0.
func ParsePage(c *fiber.Ctx, def, max int) Page {
	limit := c.QueryInt("limit", def)
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// QueryBool parses a boolean query parameter, returning def when it is absent or malformed.
func QueryBool(c *fiber.Ctx, key string, def bool) bool {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// ParamID parses a positive numeric route parameter.
func ParamID(c *fiber.Ctx, key string) (uint, bool) {
	id, err := c.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// QueryID parses a positive numeric query parameter.
func QueryID(c *fiber.Ctx, key string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
