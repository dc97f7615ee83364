package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookDecoder struct {
	meta map[string][]DCEntry
	err  error
}

func (f *fakeBookDecoder) Available() bool { return true }

func (f *fakeBookDecoder) Decode(path string) (map[string][]DCEntry, error) {
	return f.meta, f.err
}

func TestEbookExtractorSupports(t *testing.T) {
	ex := NewEbookExtractor(&fakeBookDecoder{})

	assert.True(t, ex.Supports("/books/novel.epub", "epub", ""))
	assert.False(t, ex.Supports("/books/novel.mobi", "mobi", ""))
	assert.False(t, ex.Supports("/music/song.mp3", "mp3", ""))
}

func TestEbookExtractorDublinCore(t *testing.T) {
	ex := NewEbookExtractor(&fakeBookDecoder{meta: map[string][]DCEntry{
		"title":      {{Value: "Good Omens"}},
		"creator":    {{Value: "Terry Pratchett", Attr: map[string]string{"role": "aut"}}, {Value: "Neil Gaiman"}},
		"language":   {{Value: "en"}},
		"publisher":  {{Value: "Gollancz"}},
		"date":       {{Value: "1990-05-01"}},
		"identifier": {{Value: "urn:isbn:9780575048003", Attr: map[string]string{"scheme": "ISBN"}}},
		"subject":    {{Value: "Fantasy"}},
	}})

	rec, err := ex.Extract("/books/good-omens.epub")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "epub", rec.Container)
	assert.Equal(t, DialectOPF, rec.TagFormat)
	assert.Equal(t, "Good Omens", rec.Fields[FieldTitle])
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", rec.Fields[FieldAuthor])
	assert.Equal(t, "en", rec.Fields[FieldLanguage])
	assert.Equal(t, "Gollancz", rec.Fields[FieldPublisher])
	assert.Equal(t, "1990-05-01", rec.Fields[FieldDate])
	assert.Equal(t, "urn:isbn:9780575048003", rec.Fields[FieldIdentifier])

	_, present := rec.Fields["subject"]
	assert.False(t, present, "unmapped terms must not leak in")
	assert.Nil(t, rec.DurationMS)
	assert.Nil(t, rec.HasCoverArt)
	assert.Nil(t, rec.Chapters)
}

func TestEbookExtractorSingleCreator(t *testing.T) {
	ex := NewEbookExtractor(&fakeBookDecoder{meta: map[string][]DCEntry{
		"creator": {{Value: "Ursula K. Le Guin"}},
	}})

	rec, err := ex.Extract("/books/left-hand.epub")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Ursula K. Le Guin", rec.Fields[FieldAuthor])
}

func TestEbookExtractorEmptyMetadata(t *testing.T) {
	ex := NewEbookExtractor(&fakeBookDecoder{meta: map[string][]DCEntry{}})

	rec, err := ex.Extract("/books/bare.epub")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Empty(), "no terms means an empty record for the registry to reject")
}

func TestEbookExtractorDecodeFailure(t *testing.T) {
	ex := NewEbookExtractor(&fakeBookDecoder{err: errors.New("not a zip")})
	rec, err := ex.Extract("/books/corrupt.epub")
	assert.Nil(t, rec)
	assert.Error(t, err)
}
