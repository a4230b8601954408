// Package keywords implements the go2 keyword browser: it loads the keyword
// index from a go2 backend, filters it by substring as the user types and
// renders the result as list-item markup.
package keywords

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrMalformedRecord is returned when an index entry lacks a Links object
	// or carries a non-integer Clicks value.
	ErrMalformedRecord = errors.New("malformed keyword record")

	// ErrUnexpectedStatus is returned when the backend answers with an error status.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Keyword is one entry of the working list.
type Keyword struct {
	Keyword    string
	LinkCount  int
	ClickCount int64
}

// record is the subset of a backend index entry the browser consumes.
type record struct {
	Links  map[string]json.RawMessage `json:"Links"`
	Clicks *json.Number               `json:"Clicks"`
}

// DecodeIndex decodes a keyword index document, keeping the key order of the
// document. Every malformed entry is reported; any of them fails the decode.
func DecodeIndex(r io.Reader) ([]Keyword, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword index: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("keyword index must be a JSON object, got %v", tok)
	}

	// A repeated key keeps its first position and its last value.
	var order []string
	records := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read keyword: %w", err)
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to read record %q: %w", name, err)
		}
		if _, seen := records[name]; !seen {
			order = append(order, name)
		}
		records[name] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read keyword index: %w", err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected %v", tok)
		}
		return nil, fmt.Errorf("trailing data after keyword index: %w", err)
	}

	list := make([]Keyword, 0, len(order))
	var merr *multierror.Error
	for _, name := range order {
		kw, err := decodeRecord(name, records[name])
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		list = append(list, kw)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeRecord(name string, raw json.RawMessage) (Keyword, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return Keyword{}, fmt.Errorf("%w %q: null record", ErrMalformedRecord, name)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Keyword{}, fmt.Errorf("%w %q: %v", ErrMalformedRecord, name, err)
	}
	if rec.Links == nil {
		return Keyword{}, fmt.Errorf("%w %q: missing Links", ErrMalformedRecord, name)
	}

	kw := Keyword{Keyword: name, LinkCount: len(rec.Links)}
	if rec.Clicks != nil {
		clicks, err := rec.Clicks.Int64()
		if err != nil {
			return Keyword{}, fmt.Errorf("%w %q: Clicks is not an integer", ErrMalformedRecord, name)
		}
		kw.ClickCount = clicks
	}
	return kw, nil
}
