package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthetic_data_generator/apperrors"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV File (.csv) ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, KindTable, f.Kind())
	assert.Equal(t, ".csv", f.Suffix())

	_, err = ParseFormat("Markdown (.md)")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
	assert.Equal(t, "Unsupported file format: Markdown (.md)", apperrors.UserMessage(err))
}

func TestRegistryWithoutPDF(t *testing.T) {
	r := NewRegistry(Options{})

	_, err := r.Document(FormatPDF)
	assert.ErrorIs(t, err, apperrors.ErrCapabilityUnavailable)
	assert.False(t, r.Available(FormatPDF))

	_, err = r.Table(FormatDOCX)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)

	for _, opt := range r.Catalog() {
		assert.NotEqual(t, FormatPDF, opt.Format)
	}
	assert.Equal(t, []Format{FormatDOCX, FormatTXT, FormatHTML, FormatXLSX, FormatCSV}, r.Formats())
}

func TestRegistryCatalog(t *testing.T) {
	r := NewRegistry(Options{PDFEnabled: true})
	assert.Equal(t, AllFormats, r.Formats())

	enc, err := r.Document(FormatPDF)
	require.NoError(t, err)
	assert.IsType(t, &PDFEncoder{}, enc)

	catalog := r.Catalog()
	require.Len(t, catalog, len(AllFormats))
	assert.Equal(t, "Number of Pages", catalog[0].SizeLabel)
	assert.Equal(t, []string{"whitepaper", "article", "report", "proposal", "design"}, catalog[0].ContentOptions)
	last := catalog[len(catalog)-1]
	assert.Equal(t, FormatCSV, last.Format)
	assert.Equal(t, "Number of Columns", last.ContentLabel)
	assert.Contains(t, last.SizeOptions, "2000")
}
