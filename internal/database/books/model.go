package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// bookRow is the table mapping for entities.Book.
type bookRow struct {
	ID     uint   `gorm:"primaryKey"`
	Title  string `gorm:"not null"`
	Author string `gorm:"not null"`
	Year   *int
}

func (bookRow) TableName() string {
	return "books"
}

func (r bookRow) entity() entities.Book {
	return entities.Book{
		ID:     r.ID,
		Title:  r.Title,
		Author: r.Author,
		Year:   r.Year,
	}
}

func rowFromEntity(b entities.Book) bookRow {
	return bookRow{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
	}
}

func entitiesFromRows(rows []bookRow) []entities.Book {
	books := make([]entities.Book, 0, len(rows))
	for _, r := range rows {
		books = append(books, r.entity())
	}
	return books
}

// Migrate creates or updates the books table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&bookRow{})
}
