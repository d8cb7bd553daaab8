// Package seedfile reads a local YAML catalog, used offline or alongside the
// remote catalog.
package seedfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/sources/catalogapi"
)

// Document is the seed file layout:
//
//	books:
//	  - isbn: "9780441013593"
//	    title: Dune
//	    authors: [{name: Frank Herbert}]
//	    first_publish_year: 1965
type Document struct {
	Books []catalogapi.Work `yaml:"books"`
}

// Loader handles loading of the seed catalog file
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path returns the seed file location.
func (l *Loader) Path() string { return l.filePath }

// Load reads the file and maps its entries the way remote entries are mapped.
func (l *Loader) Load() ([]domain.Book, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	books := catalogapi.MapWorks(doc.Books)
	if len(books) == 0 {
		return nil, fmt.Errorf("no valid books found in %s", l.filePath)
	}
	return books, nil
}
