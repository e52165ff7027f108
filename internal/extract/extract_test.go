package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvassist/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegistry_ExtractPlainText(t *testing.T) {
	path := writeFile(t, "alice_cv.txt", "  Alice knows Python.\n")

	text, err := Default().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Alice knows Python.", text)
}

func TestRegistry_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "photo.jpeg", "binary")

	_, err := Default().Extract(path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.False(t, Default().Supported(path))
}

func TestRegistry_ExtensionIsCaseInsensitive(t *testing.T) {
	path := writeFile(t, "BOB_CV.TXT", "Bob knows Java.")

	text, err := Default().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Bob knows Java.", text)
}

func TestPDF_CorruptFileFails(t *testing.T) {
	path := writeFile(t, "broken.pdf", "not a pdf at all")

	_, err := Default().Extract(path)
	assert.Error(t, err)
}

func writeDocx(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestDOCX_ExtractsParagraphs(t *testing.T) {
	body := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Alice Smith</w:t></w:r></w:p>
    <w:p><w:r><w:t>Python, </w:t></w:r><w:r><w:t>SQL</w:t></w:r></w:p>
  </w:body>
</w:document>`
	path := writeDocx(t, body)

	text, err := Default().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith\nPython, SQL", text)
}

func TestDOCX_MissingBodyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = Default().Extract(path)
	assert.ErrorContains(t, err, "document.xml")
}
