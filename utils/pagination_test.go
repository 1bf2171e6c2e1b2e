package utils

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pqh/blog/repository"
)

func TestPaginationLinks(t *testing.T) {
	for _, tc := range []struct {
		name       string
		number     int
		totalPages int
		want       string
	}{
		{
			name:       "middle page",
			number:     1,
			totalPages: 3,
			want: `</api/comments?page=2&size=10>; rel="next",` +
				`</api/comments?page=0&size=10>; rel="prev",` +
				`</api/comments?page=2&size=10>; rel="last",` +
				`</api/comments?page=0&size=10>; rel="first"`,
		},
		{
			name:       "first page",
			number:     0,
			totalPages: 3,
			want: `</api/comments?page=1&size=10>; rel="next",` +
				`</api/comments?page=2&size=10>; rel="last",` +
				`</api/comments?page=0&size=10>; rel="first"`,
		},
		{
			name:       "empty",
			number:     0,
			totalPages: 0,
			want: `</api/comments?page=0&size=10>; rel="last",` +
				`</api/comments?page=0&size=10>; rel="first"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paginationLinks(tc.number, tc.totalPages, 10, "/api/comments"))
		})
	}
}

func TestPaginationLinksPastLastPage(t *testing.T) {
	links := paginationLinks(math.MaxInt, 1, 10, "/api/comments")
	assert.NotContains(t, links, `rel="next"`)
	assert.NotContains(t, links, "page=-")
}

func TestPaginationHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	page := repository.NewPage([]int{1, 2}, repository.Pageable{Page: 0, Size: 2}, 5)
	PaginationHeaders(ctx, page, "/api/comments")

	assert.Equal(t, "5", w.Header().Get("X-Total-Count"))
	assert.Contains(t, w.Header().Get("Link"), `</api/comments?page=1&size=2>; rel="next"`)
	assert.Contains(t, w.Header().Get("Link"), `</api/comments?page=2&size=2>; rel="last"`)
}

func TestAlertHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	EntityCreationAlert(ctx, "blogApp", "comment", "7")
	assert.Equal(t, "comment.created", w.Header().Get("X-blogApp-alert"))
	assert.Equal(t, "7", w.Header().Get("X-blogApp-params"))

	FailureAlert(ctx, "blogApp", "comment", "idexists")
	assert.Equal(t, "error.idexists", w.Header().Get("X-blogApp-error"))
	assert.Equal(t, "comment", w.Header().Get("X-blogApp-params"))
}
