package upload

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeader builds a real multipart.FileHeader by writing a form and
// parsing it back, the same way fiber's FormFile would produce one.
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(32 << 20)
	require.NoError(t, err)

	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)

	return files[0]
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc, err := NewService(t.TempDir(), 1<<20, "http://localhost:8080/")
	require.NoError(t, err)

	return svc
}

func TestSaveAllowedImage(t *testing.T) {
	svc := newTestService(t)

	content := []byte("fake jpeg bytes")
	fh := makeFileHeader(t, "photo.JPG", "image/jpeg", content)

	res, err := svc.Save(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.URL, "http://localhost:8080/uploads/"), "URL = %q", res.URL)
	assert.True(t, strings.HasSuffix(res.Filename, ".jpg"), "Filename = %q", res.Filename)
	assert.Equal(t, int64(len(content)), res.Size)
	assert.Equal(t, "image/jpeg", res.Mimetype)

	// the bytes actually landed on disk under the generated name
	stored, err := os.ReadFile(filepath.Join(svc.Dir(), res.Filename))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestSaveAllowedVideo(t *testing.T) {
	svc := newTestService(t)

	fh := makeFileHeader(t, "clip.mov", "video/quicktime", []byte("fake video"))

	res, err := svc.Save(fh)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Filename, ".mov"))
}

func TestSaveUniqueNames(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Save(makeFileHeader(t, "a.png", "image/png", []byte("one")))
	require.NoError(t, err)

	second, err := svc.Save(makeFileHeader(t, "a.png", "image/png", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
}

func TestSaveDisallowedType(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name        string
		filename    string
		contentType string
	}{
		{"executable", "evil.exe", "application/octet-stream"},
		{"pdf", "menu.pdf", "application/pdf"},
		{"good extension wrong mime", "photo.jpg", "application/octet-stream"},
		{"good mime wrong extension", "photo.exe", "image/jpeg"},
		{"svg not allowed", "image.svg", "image/svg+xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := makeFileHeader(t, tt.filename, tt.contentType, []byte("content"))

			_, err := svc.Save(fh)
			assert.ErrorIs(t, err, ErrDisallowedType)
		})
	}

	// nothing was written for any rejected upload
	entries, err := os.ReadDir(svc.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveTooLarge(t *testing.T) {
	svc, err := NewService(t.TempDir(), 10, "http://localhost:8080")
	require.NoError(t, err)

	fh := makeFileHeader(t, "big.png", "image/png", bytes.Repeat([]byte("x"), 11))

	_, err = svc.Save(fh)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, err := os.ReadDir(svc.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveNilHeader(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Save(nil)
	assert.ErrorIs(t, err, ErrNoFile)
}
