package repository

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxLimit = 500

// ReporteFilter narrows a report query. Nil pointers and empty strings are
// ignored; every set field becomes exactly one bound comparison.
type ReporteFilter struct {
	Desde     *datatypes.Date
	Hasta     *datatypes.Date
	Turno     string
	LavadorID *uint
	// Page and Limit paginate only when Limit > 0.
	Page  int
	Limit int
}

// Predicate pairs a fixed SQL comparison with the value bound to its single
// placeholder. Clause text never contains caller-supplied input.
type Predicate struct {
	Clause string
	Arg    any
}

// Predicates builds the WHERE conditions for a table aliased as alias.
// alias must be a compile-time constant of the calling repository.
func (f ReporteFilter) Predicates(alias string) []Predicate {
	col := func(name string) string { return alias + "." + name }

	var preds []Predicate
	if f.Desde != nil {
		preds = append(preds, Predicate{Clause: col("fecha") + " >= ?", Arg: *f.Desde})
	}
	if f.Hasta != nil {
		preds = append(preds, Predicate{Clause: col("fecha") + " <= ?", Arg: *f.Hasta})
	}
	if f.Turno != "" {
		preds = append(preds, Predicate{Clause: col("turno") + " = ?", Arg: f.Turno})
	}
	if f.LavadorID != nil {
		preds = append(preds, Predicate{Clause: col("lavador_id") + " = ?", Arg: *f.LavadorID})
	}
	return preds
}

func applyPredicates(q *gorm.DB, preds []Predicate) *gorm.DB {
	for _, p := range preds {
		q = q.Where(p.Clause, p.Arg)
	}
	return q
}

func paginate(q *gorm.DB, page, limit int) *gorm.DB {
	if limit <= 0 {
		return q
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page < 1 {
		page = 1
	}
	return q.Offset((page - 1) * limit).Limit(limit)
}
