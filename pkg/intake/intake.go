// Package intake validates and persists uploaded document batches.
//
// A batch is checked as a whole before any byte reaches the disk: a single
// bad file rejects every file in the request. Accepted files are stored
// under generated names so original filenames can never collide or escape
// the content directory.
package intake

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Default batch limits, matching the upload form contract.
const (
	DefaultMaxFileSize = 10 << 20 // 10 MiB per file
	DefaultMaxFiles    = 5
)

const previewWidth = 320

// Batch rejection reasons. Handlers map all of these to a 400 response.
var (
	ErrNoFiles         = errors.New("no files uploaded")
	ErrTooManyFiles    = errors.New("too many files")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedTypes maps accepted media types to the fallback extension used when
// the original filename has none.
var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
}

// Intake writes uploaded files into BaseDir.
type Intake struct {
	BaseDir     string
	MaxFileSize int64
	MaxFiles    int
}

func New(baseDir string) *Intake {
	return &Intake{BaseDir: baseDir, MaxFileSize: DefaultMaxFileSize, MaxFiles: DefaultMaxFiles}
}

// StoredFile describes one persisted upload.
type StoredFile struct {
	OriginalName string
	Filename     string
	MimeType     string
	Size         int64
}

// IsRejection reports whether err is a batch validation failure as opposed to
// an I/O error.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNoFiles) || errors.Is(err, ErrTooManyFiles) ||
		errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrUnsupportedType)
}

// ValidateBatch checks count, declared media types and sizes for the whole
// batch. Nothing is written while validating.
func (in *Intake) ValidateBatch(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	if len(files) > in.MaxFiles {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyFiles, len(files), in.MaxFiles)
	}
	for _, fh := range files {
		ct := fh.Header.Get("Content-Type")
		if _, ok := allowedTypes[ct]; !ok {
			return fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, fh.Filename, ct)
		}
		if fh.Size > in.MaxFileSize {
			return fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, fh.Filename, fh.Size)
		}
	}
	return nil
}

// SaveAll validates the batch and then writes every file to BaseDir,
// creating the directory if needed. On an I/O error mid-batch the already
// written files are returned along with the error; cleanup is the sweep
// tool's job.
func (in *Intake) SaveAll(files []*multipart.FileHeader) ([]StoredFile, error) {
	if err := in.ValidateBatch(files); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(in.BaseDir, 0o755); err != nil {
		return nil, err
	}
	out := make([]StoredFile, 0, len(files))
	for _, fh := range files {
		sf, err := in.save(fh)
		if err != nil {
			return out, err
		}
		out = append(out, sf)
	}
	return out, nil
}

func (in *Intake) save(fh *multipart.FileHeader) (StoredFile, error) {
	ct := fh.Header.Get("Content-Type")
	name := uuid.NewString() + extFor(fh.Filename, ct)
	dst := filepath.Join(in.BaseDir, name)

	src, err := fh.Open()
	if err != nil {
		return StoredFile{}, err
	}
	defer src.Close()
	f, err := os.Create(dst)
	if err != nil {
		return StoredFile{}, err
	}
	written, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return StoredFile{}, err
	}
	if strings.HasPrefix(ct, "image/") {
		in.writePreview(dst)
	}
	return StoredFile{
		OriginalName: filepath.Base(fh.Filename),
		Filename:     name,
		MimeType:     ct,
		Size:         written,
	}, nil
}

// extFor derives the on-disk extension from the original filename, falling
// back to the declared media type, then ".bin".
func extFor(original, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(filepath.Base(original))); ext != "" && ext != "." {
		return ext
	}
	if ext, ok := allowedTypes[mimeType]; ok {
		return ext
	}
	return ".bin"
}

// PreviewName returns the preview filename for a stored image, e.g.
// "abc.png" -> "abc_thumb.jpg".
func PreviewName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "_thumb.jpg"
}

// IsPreview reports whether a directory entry is a generated preview.
func IsPreview(filename string) bool {
	return strings.HasSuffix(filename, "_thumb.jpg")
}

// writePreview renders a small jpeg next to an image upload. Best effort:
// formats imaging cannot decode (webp) are silently skipped.
func (in *Intake) writePreview(path string) {
	img, err := imaging.Open(path)
	if err != nil {
		return
	}
	if img.Bounds().Dx() > previewWidth {
		img = imaging.Resize(img, previewWidth, 0, imaging.Lanczos)
	}
	_ = imaging.Save(img, filepath.Join(in.BaseDir, PreviewName(filepath.Base(path))))
}
