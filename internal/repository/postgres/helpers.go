package postgres

import (
	"regexp"
	"strings"

	"github.com/lib/pq"
)

// uniqueViolation is the postgres error code for unique constraint
// violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

var sortColumnPattern = regexp.MustCompile(`^[a-z_]+$`)

// sanitizeSort guards ORDER BY columns against injection since they
// cannot be bound as named parameters.
func sanitizeSort(sort string) string {
	if !sortColumnPattern.MatchString(sort) {
		return "created_at"
	}
	return sort
}

func sanitizeOrder(order string) string {
	switch strings.ToLower(order) {
	case "asc":
		return "ASC"
	default:
		return "DESC"
	}
}
