package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pqh/blog/repository"
)

// PaginationHeaders writes X-Total-Count and an RFC 5988 Link header for page.
func PaginationHeaders[T any](ctx *gin.Context, page repository.Page[T], baseURL string) {
	ctx.Header("X-Total-Count", strconv.FormatInt(page.TotalElements, 10))
	ctx.Header("Link", paginationLinks(page.Number, page.TotalPages, page.Size, baseURL))
}

func paginationLinks(number, totalPages, size int, baseURL string) string {
	var links []string
	if number < totalPages-1 {
		links = append(links, pageLink(baseURL, number+1, size, "next"))
	}
	if number > 0 {
		links = append(links, pageLink(baseURL, number-1, size, "prev"))
	}
	lastPage := 0
	if totalPages > 0 {
		lastPage = totalPages - 1
	}
	links = append(links,
		pageLink(baseURL, lastPage, size, "last"),
		pageLink(baseURL, 0, size, "first"),
	)
	return strings.Join(links, ",")
}

func pageLink(baseURL string, page, size int, rel string) string {
	return fmt.Sprintf(`<%s?page=%d&size=%d>; rel="%s"`, baseURL, page, size, rel)
}
