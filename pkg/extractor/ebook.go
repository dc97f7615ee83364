package extractor

import (
	"fmt"
	"strings"
)

// DCEntry is one Dublin Core metadata value with its XML attributes
// (creator roles, identifier schemes, and so on).
type DCEntry struct {
	Value string
	Attr  map[string]string
}

// BookDecoder is the external collaborator contract for ebooks: given a
// path, return Dublin Core metadata grouped by term, or fail.
type BookDecoder interface {
	Available() bool
	Decode(path string) (map[string][]DCEntry, error)
}

// EbookExtractor normalizes EPUB OPF metadata through a BookDecoder.
type EbookExtractor struct {
	decoder BookDecoder
	ok      bool
}

// NewEbookExtractor wraps the given decoder; a nil or unavailable
// decoder yields an extractor that declines every file.
func NewEbookExtractor(decoder BookDecoder) *EbookExtractor {
	ex := &EbookExtractor{decoder: decoder}
	ex.ok = decoder != nil && decoder.Available()
	return ex
}

func (e *EbookExtractor) Name() string { return "ebook" }

func (e *EbookExtractor) Supports(path, ext, mime string) bool {
	return e.ok && ext == "epub"
}

func (e *EbookExtractor) Extract(path string) (*Record, error) {
	if !e.ok {
		return nil, nil
	}

	meta, err := e.decoder.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("epub decode: %w", err)
	}
	if meta == nil {
		return nil, nil
	}

	rec := NewRecord("epub", DialectOPF)
	for term, name := range dublinCoreTerms {
		entries := meta[term]
		if len(entries) == 0 {
			continue
		}
		var value string
		if term == "creator" {
			// A book can have several creators; keep them all.
			names := make([]string, 0, len(entries))
			for _, entry := range entries {
				if entry.Value != "" {
					names = append(names, entry.Value)
				}
			}
			value = strings.Join(names, ", ")
		} else {
			value = entries[0].Value
		}
		if value != "" {
			rec.Fields[name] = value
		}
	}

	return rec, nil
}
