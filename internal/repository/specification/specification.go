package specification

import "gorm.io/gorm"

// Specification narrows a query. Implementations compose with gorm's
// builder so repositories stay free of ad hoc WHERE clauses.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
