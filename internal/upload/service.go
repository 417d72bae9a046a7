// Package upload persists media files sent by the admin editor to local
// disk and hands back the publicly reachable URL the editor stores into
// the site document.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrNoFile is returned when the multipart field is missing.
	ErrNoFile = errors.New("no file uploaded")
	// ErrDisallowedType is returned for files outside the image/video allow-list.
	ErrDisallowedType = errors.New("only images and videos are allowed")
	// ErrFileTooLarge is returned for files over the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)

// allowedExtensions is checked against the original filename.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

// allowedMimeTypes is checked against the declared content type. Both the
// extension and the MIME type have to pass.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

// Result describes a stored upload.
type Result struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Mimetype string `json:"mimetype"`
}

// Service writes uploads into a flat local directory. Files get generated
// unique names; there is no ownership tracking and no garbage collection
// of files the document no longer references.
type Service struct {
	dir     string
	maxSize int64
	baseURL string
}

// NewService creates the upload directory if needed and returns a Service
// whose returned URLs are rooted at baseURL.
func NewService(dir string, maxSize int64, baseURL string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create upload directory")
	}

	return &Service{
		dir:     dir,
		maxSize: maxSize,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Dir returns the local directory uploads are written to.
func (s *Service) Dir() string {
	return s.dir
}

// Save validates and persists one multipart file. Oversized files and
// disallowed types are rejected before anything is written to disk.
func (s *Service) Save(fh *multipart.FileHeader) (*Result, error) {
	if fh == nil {
		return nil, ErrNoFile
	}

	if fh.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mimetype := fh.Header.Get("Content-Type")

	if !allowedExtensions[ext] || !allowedMimeTypes[strings.ToLower(mimetype)] {
		return nil, ErrDisallowedType
	}

	name := generateName(ext)

	src, err := fh.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create upload target")
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		// leave no partial file behind
		_ = os.Remove(filepath.Join(s.dir, name))
		return nil, pkgerrors.Wrap(err, "failed to write uploaded file")
	}

	return &Result{
		URL:      s.baseURL + "/uploads/" + name,
		Filename: name,
		Size:     size,
		Mimetype: mimetype,
	}, nil
}

// generateName builds a unique filename from the current time plus a random
// suffix, preserving the original extension.
func generateName(ext string) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]

	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
