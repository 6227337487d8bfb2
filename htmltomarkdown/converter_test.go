package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Peraturan</h1><h2>Bab I</h2><p>Ketentuan umum.</p>`

		md, err := htmltomarkdown.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Peraturan")
		assert.Contains(t, md, "## Bab I")
		assert.Contains(t, md, "Ketentuan umum.")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Unduh <a href="https://example.go.id/a.pdf">dokumen</a>.</p>`

		md, err := htmltomarkdown.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[dokumen](https://example.go.id/a.pdf)")
	})

	t.Run("keeps tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Nomor</th><th>Tahun</th></tr></thead>
<tbody><tr><td>12</td><td>2023</td></tr></tbody>
</table>`

		md, err := htmltomarkdown.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Nomor")
		assert.Contains(t, md, "2023")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("drops scripts", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script>var secret = 1;</script></head><body><p>Visible</p></body></html>`

		md, err := htmltomarkdown.NewTextExtractor().ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Visible")
		assert.NotContains(t, md, "secret")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewTextExtractor().ExtractText("   ")

		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
