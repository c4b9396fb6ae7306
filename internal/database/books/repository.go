// Package books provides database operations for book records.
//
// Every method runs in its own transaction that is committed (or rolled back)
// before it returns. Nothing is cached between calls.
//
// # Usage
//
//	repo := books.NewRepository(db.DB)
//	book, found, err := repo.GetByID(ctx, 1)
package books

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/schemas"
)

// Filter narrows Search. Nil fields impose no constraint.
type Filter struct {
	Title  *string // substring of the title, case-sensitive
	Author *string // substring of the author, case-sensitive
	Year   *int    // exact publication year
}

// IsEmpty reports whether no filter is set.
func (f Filter) IsEmpty() bool {
	return f.Title == nil && f.Author == nil && f.Year == nil
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// Create inserts a new book. The store assigns the ID.
func (r *Repository) Create(ctx context.Context, in schemas.BookCreate) (entities.Book, error) {
	row := rowFromEntity(in.Entity())
	row.ID = 0

	err := r.tx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return entities.Book{}, fmt.Errorf("create book: %w", err)
	}
	return row.entity(), nil
}

// GetAll returns every book in ID order.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Book, error) {
	var rows []bookRow
	err := r.tx(ctx, func(tx *gorm.DB) error {
		return tx.Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return entitiesFromRows(rows), nil
}

// GetByID returns the book with the given ID. A missing book is reported
// through the boolean, not as an error.
func (r *Repository) GetByID(ctx context.Context, id uint) (entities.Book, bool, error) {
	var (
		row   bookRow
		found bool
	)
	err := r.tx(ctx, func(tx *gorm.DB) error {
		var err error
		row, found, err = first(tx, id)
		return err
	})
	if err != nil {
		return entities.Book{}, false, fmt.Errorf("get book %d: %w", id, err)
	}
	if !found {
		return entities.Book{}, false, nil
	}
	return row.entity(), true, nil
}

// Update applies the fields present in the update and returns the stored record.
func (r *Repository) Update(ctx context.Context, id uint, in schemas.BookUpdate) (entities.Book, bool, error) {
	var (
		updated entities.Book
		found   bool
	)
	err := r.tx(ctx, func(tx *gorm.DB) error {
		row, ok, err := first(tx, id)
		if err != nil || !ok {
			return err
		}
		found = true

		if in.IsEmpty() {
			updated = row.entity()
			return nil
		}

		updated = in.Apply(row.entity())
		return tx.Model(&bookRow{ID: id}).
			Select("title", "author", "year").
			Updates(rowFromEntity(updated)).Error
	})
	if err != nil {
		return entities.Book{}, false, fmt.Errorf("update book %d: %w", id, err)
	}
	return updated, found, nil
}

// Delete removes the book permanently. Deleting a missing ID returns false.
func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	if !storable(id) {
		return false, nil
	}
	var affected int64
	err := r.tx(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&bookRow{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	return affected > 0, nil
}

// Search returns the books matching all provided filters, in ID order.
func (r *Repository) Search(ctx context.Context, f Filter) ([]entities.Book, error) {
	var rows []bookRow
	err := r.tx(ctx, func(tx *gorm.DB) error {
		query := tx.Model(&bookRow{})
		// instr keeps matching literal: no LIKE wildcards, no case folding
		if f.Title != nil {
			query = query.Where("instr(title, ?) > 0", *f.Title)
		}
		if f.Author != nil {
			query = query.Where("instr(author, ?) > 0", *f.Author)
		}
		if f.Year != nil {
			query = query.Where("year = ?", *f.Year)
		}
		return query.Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return entitiesFromRows(rows), nil
}

// Count returns the number of stored books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&bookRow{}).Count(&total).Error
	return total, err
}

// storable reports whether id fits the store's signed 64-bit key.
// Larger ids can never exist.
func storable(id uint) bool {
	return uint64(id) <= math.MaxInt64
}

func first(tx *gorm.DB, id uint) (bookRow, bool, error) {
	if !storable(id) {
		return bookRow{}, false, nil
	}
	var row bookRow
	err := tx.First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bookRow{}, false, nil
	}
	if err != nil {
		return bookRow{}, false, err
	}
	return row, true, nil
}
