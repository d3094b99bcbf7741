package repository

import (
	"context"
	"fmt"

	"lexdesk/db"

	"gorm.io/gorm"
)

// table holds the operations every entity repository shares. T is the gorm
// model, entity names the record in error messages and order is the fixed
// ORDER BY of every listing. scope, when set, shapes the SELECT of reads.
type table[T any] struct {
	gw     *db.Gateway
	entity string
	order  string
	scope  func(q *gorm.DB) *gorm.DB
	// qualify prefixes the id column when scope joins other tables
	qualify string
}

func (t table[T]) selectQuery(conn *gorm.DB) *gorm.DB {
	q := conn.Model(new(T))
	if t.scope != nil {
		q = t.scope(q)
	}
	return q
}

func (t table[T]) save(ctx context.Context, rec *T) error {
	return t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		return insert(conn, t.entity, rec)
	})
}

// insert writes rec on an already acquired connection and populates its ID
func insert[T any](conn *gorm.DB, entity string, rec *T) error {
	res := conn.Create(rec)
	if res.Error != nil {
		return persistence("save "+entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: failed to save %s: no rows affected", ErrPersistence, entity)
	}
	return nil
}

// first returns the first matching row or (nil, nil) when none matches
func (t table[T]) first(ctx context.Context, crit *Criteria) (*T, error) {
	var rec T
	var found bool
	err := t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		q, err := crit.Apply(t.selectQuery(conn))
		if err != nil {
			return err
		}
		res := q.Order(t.order).Limit(1).Find(&rec)
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, persistence("find "+t.entity, err)
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

func (t table[T]) findByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, nil
	}
	return t.first(ctx, NewCriteria().Eq(t.qualify+"id", id))
}

// list returns every row matching crit in the table's order, never nil
func (t table[T]) list(ctx context.Context, crit *Criteria) ([]T, error) {
	return t.listLimit(ctx, crit, 0)
}

func (t table[T]) listLimit(ctx context.Context, crit *Criteria, limit int) ([]T, error) {
	rows := make([]T, 0)
	err := t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		q, err := crit.Apply(t.selectQuery(conn))
		if err != nil {
			return err
		}
		q = q.Order(t.order)
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q.Find(&rows).Error
	})
	if err != nil {
		return nil, persistence("list "+t.entity, err)
	}
	return rows, nil
}

// update writes every mutable column of rec (and updated_at) keyed by id
func (t table[T]) update(ctx context.Context, id uint, rec *T) error {
	if id == 0 {
		return notFound(t.entity, id)
	}
	var affected int64
	err := t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		res := conn.Model(rec).Select("*").Omit("created_at").Updates(rec)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return persistence("update "+t.entity, err)
	}
	if affected == 0 {
		return notFound(t.entity, id)
	}
	return nil
}

// updateColumns sets a subset of columns on one row
func (t table[T]) updateColumns(ctx context.Context, id uint, values map[string]interface{}) error {
	var affected int64
	err := t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		res := conn.Model(new(T)).Where("id = ?", id).Updates(values)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return persistence("update "+t.entity, err)
	}
	if affected == 0 {
		return notFound(t.entity, id)
	}
	return nil
}

func (t table[T]) delete(ctx context.Context, id uint) error {
	return t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		return deleteByID[T](conn, t.entity, id)
	})
}

// deleteByID hard-deletes one row on an already acquired connection
func deleteByID[T any](conn *gorm.DB, entity string, id uint) error {
	res := conn.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return persistence("delete "+entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entity, id)
	}
	return nil
}

func (t table[T]) count(ctx context.Context, crit *Criteria) (int64, error) {
	var n int64
	err := t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		q, err := crit.Apply(conn.Model(new(T)))
		if err != nil {
			return err
		}
		return q.Count(&n).Error
	})
	if err != nil {
		return 0, persistence("count "+t.entity, err)
	}
	return n, nil
}

// sum returns COALESCE(SUM(column), 0) over the rows matching crit
func (t table[T]) sum(ctx context.Context, column string, crit *Criteria) (float64, error) {
	if !columnPattern.MatchString(column) {
		return 0, fmt.Errorf("%w: invalid column %q", ErrPersistence, column)
	}
	var total float64
	err := t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		q, err := crit.Apply(conn.Model(new(T)))
		if err != nil {
			return err
		}
		return q.Select("COALESCE(SUM(" + column + "), 0)").Row().Scan(&total)
	})
	if err != nil {
		return 0, persistence("sum "+t.entity, err)
	}
	return total, nil
}
