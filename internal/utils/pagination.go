package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/acme-dashboard/internal/constants"
)

// GetPageParam reads the 1-based "page" query parameter. Missing, malformed
// or non-positive values fall back to the first page.
func GetPageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	if err != nil || page < constants.MinPage {
		return constants.MinPage
	}
	return page
}

// Offset returns the row offset of a 1-based page.
func Offset(page, perPage int) int {
	if page < constants.MinPage {
		page = constants.MinPage
	}
	return (page - 1) * perPage
}

// TotalPages is the number of pages needed to show count rows, perPage at a time.
func TotalPages(count int64, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	pages := count / int64(perPage)
	if count%int64(perPage) > 0 {
		pages++
	}
	return int(pages)
}
