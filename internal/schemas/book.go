// Package schemas shapes and validates book payloads at the API boundary.
//
// Validation rules live in `binding` struct tags so gin's request binding and
// the standalone Validate methods (used by the CLI) apply the same checks.
package schemas

import (
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterJSONTagNames(v)
	return v
}

// BookFields is the field set shared by the create payload and the response.
type BookFields struct {
	Title  string `json:"title" binding:"required,min=1"`
	Author string `json:"author" binding:"required,min=1"`
	Year   *int   `json:"year"`
}

// BookCreate is the payload for creating a book. Unknown fields are ignored.
type BookCreate struct {
	BookFields
}

// Validate checks the create payload outside of gin's binding.
func (b BookCreate) Validate() error {
	if err := validate.Struct(b); err != nil {
		return FromValidator(err)
	}
	return nil
}

// Entity converts the payload to a record without an ID.
func (b BookCreate) Entity() entities.Book {
	book := entities.Book{Title: b.Title, Author: b.Author}
	if b.Year != nil {
		year := *b.Year
		book.Year = &year
	}
	return book
}

// BookUpdate is a partial update. Absent fields are left untouched.
type BookUpdate struct {
	Title  Optional[string] `json:"title"`
	Author Optional[string] `json:"author"`
	Year   Optional[int]    `json:"year"`
}

// Validate applies the create rules to every field that is present.
// Year may be null to clear it; title and author may not.
func (u BookUpdate) Validate() error {
	verr := &ValidationError{}
	checkText := func(field string, o Optional[string]) {
		if !o.Set {
			return
		}
		if o.Null {
			verr.add(field, "must not be null")
			return
		}
		if err := validate.Var(o.Value, "min=1"); err != nil {
			verr.add(field, "must not be empty")
		}
	}
	checkText("title", u.Title)
	checkText("author", u.Author)
	return verr.orNil()
}

// IsEmpty reports whether the update names no fields.
func (u BookUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Author.Set && !u.Year.Set
}

// Apply merges the present fields onto a copy of existing.
func (u BookUpdate) Apply(existing entities.Book) entities.Book {
	merged := existing
	if u.Title.Set {
		merged.Title = u.Title.Value
	}
	if u.Author.Set {
		merged.Author = u.Author.Value
	}
	if u.Year.Set {
		merged.Year = u.Year.Ptr()
	} else if existing.Year != nil {
		year := *existing.Year
		merged.Year = &year
	}
	return merged
}

// Book is the externally visible representation of a record.
type Book struct {
	ID uint `json:"id"`
	BookFields
}

// ToResponse renders a record for the API.
func ToResponse(b entities.Book) Book {
	return Book{
		ID: b.ID,
		BookFields: BookFields{
			Title:  b.Title,
			Author: b.Author,
			Year:   b.Year,
		},
	}
}

// ToResponseList renders records for the API. It never returns nil.
func ToResponseList(books []entities.Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		out = append(out, ToResponse(b))
	}
	return out
}
