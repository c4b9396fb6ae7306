package entities

// Book is a single persisted book record.
type Book struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   *int   `json:"year"` // nil when the publication year is unknown
}

// HasYear reports whether the publication year is known.
func (b Book) HasYear() bool {
	return b.Year != nil
}
