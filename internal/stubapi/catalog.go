package stubapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-client/internal/domain"
)

const defaultPageLimit = 20

func pageParams(c *gin.Context) (limit, offset int) {
	limit = defaultPageLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// textQuery extracts the free-text search term from any text.<locale> param.
func textQuery(c *gin.Context) string {
	for key, values := range c.Request.URL.Query() {
		if strings.HasPrefix(key, "text.") && len(values) > 0 {
			return strings.ToLower(values[0])
		}
	}
	return ""
}

func (s *Server) productsHandler(c *gin.Context) {
	limit, offset := pageParams(c)
	text := textQuery(c)

	s.mu.Lock()
	all := append([]domain.ProductProjection(nil), s.products...)
	s.mu.Unlock()

	if text != "" {
		filtered := all[:0]
		for _, p := range all {
			for _, name := range p.Name {
				if strings.Contains(strings.ToLower(name), text) {
					filtered = append(filtered, p)
					break
				}
			}
		}
		all = filtered
	}

	page := domain.ProductPage{Limit: limit, Offset: offset, Total: len(all)}
	if offset < len(all) {
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		page.Results = all[offset:end]
	}
	if page.Results == nil {
		page.Results = []domain.ProductProjection{}
	}
	page.Count = len(page.Results)
	c.JSON(http.StatusOK, page)
}

func (s *Server) categoriesHandler(c *gin.Context) {
	limit, offset := pageParams(c)

	s.mu.Lock()
	all := append([]domain.Category(nil), s.categories...)
	s.mu.Unlock()

	page := domain.CategoryPage{Limit: limit, Offset: offset, Total: len(all)}
	if offset < len(all) {
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		page.Results = all[offset:end]
	}
	if page.Results == nil {
		page.Results = []domain.Category{}
	}
	page.Count = len(page.Results)
	c.JSON(http.StatusOK, page)
}
