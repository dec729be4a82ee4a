package persistence

import (
	"strings"

	"github.com/tsaci/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies ordering and pagination to a query. defaultOrder is
// used when the filter does not name a column.
func applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter, defaultOrder)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies ordering only, for count queries
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	return query
}
