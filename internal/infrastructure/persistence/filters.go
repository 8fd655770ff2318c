package persistence

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/domain/shared"
)

// normalizeFilter fills in pagination defaults so offset math and page-count
// calculations never see zero values.
func normalizeFilter(filter shared.Filter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// validSortField reports whether the requested order column is in the
// entity's whitelist. OrderBy values are interpolated into the SQL, so only
// whitelisted columns are ever accepted.
func validSortField(field string, allowed []string) bool {
	for _, a := range allowed {
		if field == a {
			return true
		}
	}
	return false
}

// applySearch adds an ILIKE condition over the given columns
func applySearch(query *gorm.DB, search string, columns []string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + search + "%"
	conditions := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		conditions[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(conditions, " OR "), args...)
}

// applyOrdering adds the ORDER BY clause, falling back to the default order
// when no (or an unlisted) column is requested
func applyOrdering(query *gorm.DB, filter shared.Filter, sortable []string, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" && validSortField(filter.OrderBy, sortable) {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + dir)
	}
	return query.Order(defaultOrder)
}

// applyPagination adds OFFSET/LIMIT from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	offset := (filter.Page - 1) * filter.PageSize
	return query.Offset(offset).Limit(filter.PageSize)
}

// applyDocumentFilters applies the filter keys shared by all document lists
func applyDocumentFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "date_from":
			query = query.Where("date >= ?", value)
		case "date_to":
			query = query.Where("date <= ?", value)
		}
	}
	return query
}

// deleteOrphanDetails removes detail rows that are no longer part of the
// aggregate after a save
func deleteOrphanDetails(db *gorm.DB, model interface{}, fkColumn string, parentID uuid.UUID, keep []uuid.UUID) error {
	query := db.Where(fkColumn+" = ?", parentID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(model).Error
}
