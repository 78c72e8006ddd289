// Package orm is a thin chainable layer over GORM used by the repositories.
// It exists so repository code reads like a query description and so cached
// reads and pagination share one implementation.
package orm

import (
	"time"

	"gorm.io/gorm"

	"github.com/aferchichi/stockshop/pkg/cache"
	"github.com/aferchichi/stockshop/pkg/database"
	"github.com/aferchichi/stockshop/pkg/metrics"
)

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Query struct {
	db *gorm.DB
}

// DB starts a query chain against the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Tx starts a query chain against an existing transaction handle.
func Tx(tx *gorm.DB) *Query {
	return &Query{db: tx}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(expr string) *Query {
	return &Query{db: q.db.Order(expr)}
}

func (q *Query) Preload(association string) *Query {
	return &Query{db: q.db.Preload(association)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

// First loads the first matching row. Returns gorm.ErrRecordNotFound when
// nothing matches.
func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

// Count returns the number of matching rows.
func (q *Query) Count() (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Create inserts v.
func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

// Save upserts v (full update by primary key).
func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Save(v).Error
}

// Updates applies a partial update from a map or struct.
func (q *Query) Updates(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return q.db.Updates(v).Error
}

// Delete removes matching rows of the model v.
func (q *Query) Delete(v interface{}) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return q.db.Delete(v).Error
}

// GetWithPagination loads one page of results and reports page metadata.
// page and limit are 1-based and clamped to sane values.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	total, err := (&Query{db: q.db.Session(&gorm.Session{})}).Count()
	if err != nil {
		return Pagination{}, err
	}

	defer metrics.ObserveDBQuery("select", time.Now())
	err = q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}, nil
}

// Cache loads dest from the cache under key, falling back to the database
// and priming the cache on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.Get(dest); err != nil {
		return err
	}

	_ = cache.Set(key, dest, ttl)
	return nil
}

// CacheFirst is Cache for single-row lookups. gorm.ErrRecordNotFound
// passes through uncached.
func (q *Query) CacheFirst(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.First(dest); err != nil {
		return err
	}

	_ = cache.Set(key, dest, ttl)
	return nil
}

// Transaction runs fn inside a single database transaction; any error rolls
// the whole transaction back.
func Transaction(fn func(tx *gorm.DB) error) error {
	return database.DB.Transaction(fn)
}
