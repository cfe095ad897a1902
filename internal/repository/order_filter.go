package repository

import (
	"strings"
	"time"

	"snackbar/internal/models"
)

// OrderFilter narrows an order listing. Zero-valued fields do not constrain
// the result; set fields are combined with AND.
type OrderFilter struct {
	Status     *models.OrderStatus
	Type       string
	Department string
	// Name matches as a case-insensitive substring of the requester name.
	Name string
	// CreatedFrom is an inclusive lower bound on CreatedAt.
	CreatedFrom *time.Time
	// CreatedBefore is an exclusive upper bound on CreatedAt.
	CreatedBefore *time.Time
}

// Matches reports whether o satisfies every set criterion.
func (f OrderFilter) Matches(o *models.Order) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.Type != "" && o.Type != f.Type {
		return false
	}
	if f.Department != "" && o.Department != f.Department {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(o.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedBefore != nil && !o.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, lower-cased.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
