package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("record already exists")
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ListOptions carries pagination, sort and equality filters for list reads.
// Sort uses API field names ("price,-ratingsAverage"); unknown fields are ignored.
type ListOptions struct {
	Page    int
	Limit   int
	Sort    string
	Filters map[string]interface{}
}

func (o ListOptions) normalized() ListOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

type CRUDRepository[T any] interface {
	Create(ctx context.Context, db *gorm.DB, record *T) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*T, error)
	List(ctx context.Context, db *gorm.DB, opts ListOptions) ([]T, int64, error)
	Update(ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

// CRUDRepositoryImpl is the shared gorm implementation behind tours, reviews
// and bookings. columns maps API field names to sortable/filterable columns.
type CRUDRepositoryImpl[T any] struct {
	columns map[string]string
}

func NewCRUDRepository[T any](columns map[string]string) *CRUDRepositoryImpl[T] {
	return &CRUDRepositoryImpl[T]{columns: columns}
}

func (r *CRUDRepositoryImpl[T]) Create(ctx context.Context, db *gorm.DB, record *T) error {
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRecord
		}
		return err
	}
	return nil
}

func (r *CRUDRepositoryImpl[T]) FindByID(ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var record T
	if err := db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *CRUDRepositoryImpl[T]) List(ctx context.Context, db *gorm.DB, opts ListOptions) ([]T, int64, error) {
	opts = opts.normalized()
	q := r.filtered(db.WithContext(ctx).Model(new(T)), opts.Filters).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []T
	err := r.sorted(q, opts.Sort).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&records).Error
	return records, total, err
}

func (r *CRUDRepositoryImpl[T]) Update(ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (*T, error) {
	result := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRecord
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByID(ctx, db, id)
}

func (r *CRUDRepositoryImpl[T]) Delete(ctx context.Context, db *gorm.DB, id string) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *CRUDRepositoryImpl[T]) filtered(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
	for field, value := range filters {
		if column, ok := r.columns[field]; ok {
			q = q.Where(column+" = ?", value)
		}
	}
	return q
}

func (r *CRUDRepositoryImpl[T]) sorted(q *gorm.DB, sort string) *gorm.DB {
	applied := false
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		column, ok := r.columns[strings.TrimPrefix(field, "-")]
		if !ok {
			continue
		}
		if desc {
			column += " DESC"
		}
		q = q.Order(column)
		applied = true
	}
	if !applied {
		q = q.Order("created_at DESC")
	}
	return q
}
