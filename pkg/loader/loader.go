// Package loader reads merge sources. A source is either an HTTP(S) URL or
// a local file path; either way the whole body is buffered, checked for
// strict UTF-8 and parsed in one shot. There is no retry or timeout: a
// hanging source stalls the run.
package loader

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/kass/json2gpx/pkg/models"
)

// SchemaError reports a source whose JSON parsed but does not carry a
// list-typed "items" field. The CLI maps it to its own exit code.
type SchemaError struct {
	Source string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, models.ErrItemsMissing)
}

// IsURL reports whether the source should be fetched over HTTP.
func IsURL(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load reads and parses one source.
func Load(source string) (models.Document, error) {
	var (
		body []byte
		err  error
	)
	if IsURL(source) {
		body, err = fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("reading %s: %w", source, err)
	}
	if !utf8.Valid(body) {
		return models.Document{}, fmt.Errorf("reading %s: body is not valid UTF-8", source)
	}

	doc, err := models.ParseDocument(body)
	if errors.Is(err, models.ErrItemsMissing) {
		return models.Document{}, &SchemaError{Source: source}
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("reading %s: %w", source, err)
	}
	return doc, nil
}

// LoadAll loads every source in order, stopping at the first failure.
func LoadAll(sources []string) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(sources))
	for _, src := range sources {
		doc, err := Load(src)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
