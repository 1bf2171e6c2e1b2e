package controllers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pqh/blog/repository"
	"github.com/pqh/blog/utils"
)

// parsePageable reads page, size and sort query parameters.
// Invalid page or size values fall back to defaults; unknown sort properties are rejected.
func parsePageable(ctx *gin.Context, defaultSize, maxSize int) (repository.Pageable, error) {
	p := repository.Pageable{
		Page: parseNonNegative(ctx.Query("page"), 0),
		Size: parseNonNegative(ctx.Query("size"), defaultSize),
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	// Keep Page*Size inside int.
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		p.Page = math.MaxInt / p.Size
	}

	for _, raw := range ctx.QueryArray("sort") {
		orders, err := parseSort(raw)
		if err != nil {
			return repository.Pageable{}, err
		}
		p.Sort = append(p.Sort, orders...)
	}
	return p, nil
}

// parseSort accepts "prop", "prop,asc", "prop,desc" and "a,b,desc".
func parseSort(raw string) ([]repository.SortOrder, error) {
	parts := strings.Split(raw, ",")
	desc := false
	if n := len(parts); n > 1 {
		switch dir := strings.ToLower(strings.TrimSpace(parts[n-1])); dir {
		case "desc":
			desc = true
			parts = parts[:n-1]
		case "asc":
			parts = parts[:n-1]
		}
	}

	var orders []repository.SortOrder
	for _, property := range parts {
		property = strings.TrimSpace(property)
		if property == "" {
			continue
		}
		if _, ok := repository.CommentSortColumn(property); !ok {
			return nil, utils.NewBadRequestAlert("Unknown sort property "+property, commentEntityName, "sortinvalid")
		}
		orders = append(orders, repository.SortOrder{Property: property, Desc: desc})
	}
	return orders, nil
}

func parseNonNegative(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return def
	}
	return n
}
