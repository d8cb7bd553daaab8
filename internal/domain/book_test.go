package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestBookKey(t *testing.T) {
	tests := []struct {
		name string
		book Book
		want string
	}{
		{
			name: "with published",
			book: Book{Title: "Dune", Author: "Herbert", Published: "1965"},
			want: "Dune_Herbert_1965",
		},
		{
			name: "missing published",
			book: Book{Title: "Dune", Author: "Herbert"},
			want: "Dune_Herbert_unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.book.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithIDIsStable(t *testing.T) {
	a := Book{Title: "Dune", Author: "Herbert", Published: "1965"}.WithID()
	b := Book{Title: "Dune", Author: "Herbert", Published: "1965", Pages: 412}.WithID()
	c := Book{Title: "Dune", Author: "Herbert", Published: "1966"}.WithID()

	if a.ID == "" {
		t.Fatal("WithID() left the id empty")
	}
	if a.ID != b.ID {
		t.Errorf("same key gave different ids: %q vs %q", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Errorf("different keys gave the same id %q", a.ID)
	}
}

func TestWithIDKeepsExisting(t *testing.T) {
	got := Book{ID: " 978-0441013593 ", Title: "Dune"}.WithID()
	if got.ID != "978-0441013593" {
		t.Errorf("WithID() = %q, want trimmed original id", got.ID)
	}
}

func TestNewCustomID(t *testing.T) {
	a, b := NewCustomID(), NewCustomID()
	if !strings.HasPrefix(a, "custom-") {
		t.Errorf("NewCustomID() = %q, want custom- prefix", a)
	}
	if a == b {
		t.Error("NewCustomID() returned the same id twice")
	}
}

func TestBookUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "string id", in: `{"id":"b1","title":"Dune"}`, want: "b1"},
		{name: "numeric id", in: `{"id":1718000000000,"title":"Dune"}`, want: "1718000000000"},
		{name: "null id", in: `{"id":null,"title":"Dune"}`, want: ""},
		{name: "missing id", in: `{"title":"Dune"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Book
			if err := json.Unmarshal([]byte(tt.in), &b); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if b.ID != tt.want {
				t.Errorf("ID = %q, want %q", b.ID, tt.want)
			}
			if b.Title != "Dune" {
				t.Errorf("Title = %q, want Dune", b.Title)
			}
		})
	}
}

func TestBookUnmarshalProvenance(t *testing.T) {
	var b Book
	in := `{"id":"custom-1","title":"Mine","author":"Me","published":"01/02/2003","pages":120,"isTemporary":true}`
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !b.Custom || b.Pages != 120 || b.Published != "01/02/2003" {
		t.Errorf("Unmarshal() = %+v", b)
	}
}

func TestDraftBook(t *testing.T) {
	d := BookDraft{Title: "  Mine ", Author: " Me", Published: PublishedOn(3, 2, 2001), Pages: 10}
	b := d.Book()

	if !b.Custom {
		t.Error("draft book should be custom")
	}
	if b.Title != "Mine" || b.Author != "Me" {
		t.Errorf("draft fields not trimmed: %+v", b)
	}
	if b.Published != "03/02/2001" {
		t.Errorf("Published = %q, want 03/02/2001", b.Published)
	}
	if !strings.HasPrefix(b.ID, "custom-") {
		t.Errorf("ID = %q, want custom- prefix", b.ID)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
		field   string
	}{
		{name: "valid draft", value: BookDraft{Title: "Dune", Author: "Herbert"}},
		{name: "missing title", value: BookDraft{Author: "Herbert"}, wantErr: true, field: "title"},
		{name: "negative pages", value: BookDraft{Title: "Dune", Author: "Herbert", Pages: -1}, wantErr: true, field: "pages"},
		{name: "rating too high", value: Feedback{Rating: 6}, wantErr: true, field: "rating"},
		{name: "rating in range", value: Feedback{Rating: 5, Comments: "great"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error should wrap ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Validate() error = %q, want mention of %q", err.Error(), tt.field)
			}
		})
	}
}
