package intake

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFile struct {
	name    string
	mime    string
	content []byte
}

// fileHeaders builds real multipart.FileHeader values by round-tripping a
// multipart body through the stdlib parser, the same shape gin hands to the
// upload handler.
func fileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, f.name))
		h.Set("Content-Type", f.mime)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["files"]
}

func pdf(name string) testFile {
	return testFile{name: name, mime: "application/pdf", content: []byte("%PDF-1.4 test")}
}

func pngFile(t *testing.T, name string) testFile {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return testFile{name: name, mime: "image/png", content: buf.Bytes()}
}

func TestValidateBatchEmpty(t *testing.T) {
	in := New(t.TempDir())
	err := in.ValidateBatch(nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestValidateBatchTooManyFiles(t *testing.T) {
	in := New(t.TempDir())
	var files []testFile
	for i := 0; i < 6; i++ {
		files = append(files, pdf(fmt.Sprintf("doc%d.pdf", i)))
	}
	err := in.ValidateBatch(fileHeaders(t, files...))
	assert.ErrorIs(t, err, ErrTooManyFiles)
}

func TestValidateBatchUnsupportedTypeRejectsWholeBatch(t *testing.T) {
	dir := t.TempDir()
	in := New(dir)
	fhs := fileHeaders(t,
		pdf("fine.pdf"),
		testFile{name: "notes.txt", mime: "text/plain", content: []byte("hello")},
	)
	_, err := in.SaveAll(fhs)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// nothing may be written when any file in the batch is rejected
	entries, rerr := os.ReadDir(dir)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
}

func TestValidateBatchFileTooLarge(t *testing.T) {
	in := New(t.TempDir())
	in.MaxFileSize = 4
	err := in.ValidateBatch(fileHeaders(t, pdf("big.pdf")))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSaveAllFullBatch(t *testing.T) {
	dir := t.TempDir()
	in := New(dir)
	var files []testFile
	for i := 0; i < 5; i++ {
		files = append(files, pdf(fmt.Sprintf("doc%d.pdf", i)))
	}
	stored, err := in.SaveAll(fileHeaders(t, files...))
	require.NoError(t, err)
	require.Len(t, stored, 5)

	seen := map[string]bool{}
	for _, sf := range stored {
		assert.False(t, seen[sf.Filename], "generated names must not collide")
		seen[sf.Filename] = true
		assert.True(t, strings.HasSuffix(sf.Filename, ".pdf"))
		assert.Equal(t, int64(len("%PDF-1.4 test")), sf.Size)
		_, serr := os.Stat(filepath.Join(dir, sf.Filename))
		assert.NoError(t, serr)
	}
}

func TestSaveAllNeutralizesOriginalName(t *testing.T) {
	dir := t.TempDir()
	in := New(dir)
	stored, err := in.SaveAll(fileHeaders(t, pdf("../../evil.pdf")))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotContains(t, stored[0].Filename, "/")
	assert.NotContains(t, stored[0].Filename, "..")
	assert.Equal(t, "evil.pdf", stored[0].OriginalName)
	_, serr := os.Stat(filepath.Join(dir, stored[0].Filename))
	assert.NoError(t, serr)
}

func TestSaveAllWritesImagePreview(t *testing.T) {
	dir := t.TempDir()
	in := New(dir)
	stored, err := in.SaveAll(fileHeaders(t, pngFile(t, "scan.png")))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	_, serr := os.Stat(filepath.Join(dir, PreviewName(stored[0].Filename)))
	assert.NoError(t, serr)
}

func TestExtFor(t *testing.T) {
	cases := []struct {
		original string
		mime     string
		want     string
	}{
		{"report.PDF", "application/pdf", ".pdf"},
		{"photo", "image/png", ".png"},
		{"photo", "image/jpeg", ".jpg"},
		{"weird", "application/octet-stream", ".bin"},
		{"archive.tar.gz", "application/pdf", ".gz"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extFor(tc.original, tc.mime), "extFor(%q, %q)", tc.original, tc.mime)
	}
}

func TestPreviewNames(t *testing.T) {
	assert.Equal(t, "abc_thumb.jpg", PreviewName("abc.png"))
	assert.True(t, IsPreview("abc_thumb.jpg"))
	assert.False(t, IsPreview("abc.png"))
}
