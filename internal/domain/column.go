package domain

// ColumnID names one of the fixed reading-status columns.
type ColumnID string

const (
	ToRead  ColumnID = "toRead"
	Reading ColumnID = "reading"
	Read    ColumnID = "read"
)

// ColumnIDs lists the columns in display order. The set is closed.
var ColumnIDs = []ColumnID{ToRead, Reading, Read}

var columnTitles = map[ColumnID]string{
	ToRead:  "To read",
	Reading: "Reading",
	Read:    "Read",
}

// ParseColumnID reports whether s is one of the fixed column ids.
func ParseColumnID(s string) (ColumnID, bool) {
	id := ColumnID(s)
	_, ok := columnTitles[id]
	return id, ok
}

// Title is the default display label of the column.
func (c ColumnID) Title() string {
	return columnTitles[c]
}

func (c ColumnID) String() string { return string(c) }

// Column is a status bucket. Books keep insertion order, which is display order.
type Column struct {
	ID    ColumnID `json:"id"`
	Title string   `json:"title"`
	Books []Book   `json:"books"`
}

// Clone deep-copies the column so callers can hold it outside the store lock.
func (c Column) Clone() Column {
	books := make([]Book, len(c.Books))
	copy(books, c.Books)
	c.Books = books
	return c
}

// DefaultLayout returns the three empty columns a fresh board starts with.
func DefaultLayout() []Column {
	cols := make([]Column, 0, len(ColumnIDs))
	for _, id := range ColumnIDs {
		cols = append(cols, Column{ID: id, Title: id.Title(), Books: []Book{}})
	}
	return cols
}
