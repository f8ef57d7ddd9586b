// Package storage keeps uploaded profile images in a public directory that is
// served under a URL prefix.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const (
	msgBadExtension = "فرمت فایل مجاز نیست (jpg, jpeg, png, gif, webp)"
	msgTooLarge     = "حجم فایل بیش از حد مجاز است"
	msgEmptyFile    = "فایل خالی است"
)

type ImageStore struct {
	fs       afero.Fs
	prefix   string
	maxBytes int64
}

// NewImageStore roots the store at cfg.UploadDir on the local disk.
func NewImageStore(cfg internal.StorageConfig) *ImageStore {
	return NewImageStoreFs(afero.NewBasePathFs(afero.NewOsFs(), cfg.UploadDir), cfg)
}

// NewImageStoreFs uses fs as the upload directory itself.
func NewImageStoreFs(fs afero.Fs, cfg internal.StorageConfig) *ImageStore {
	prefix := "/" + strings.Trim(cfg.PublicPrefix, "/")
	return &ImageStore{fs: fs, prefix: prefix, maxBytes: cfg.MaxImageBytes}
}

// SaveImage writes r under a random name that keeps the original extension
// and returns the public path of the stored file.
func (s *ImageStore) SaveImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	v := validation.NewValidator()
	v.Field("image", ext).
		Custom(func(value interface{}) *internal.AppError {
			if !allowedExtensions[value.(string)] {
				return internal.NewValidationError(msgBadExtension, internal.ErrCodeInvalidFile)
			}
			return nil
		})
	if err := v.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", internal.NewInternalError(internal.MsgInternal, err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		_ = s.fs.Remove(name)
		return "", internal.NewInternalError(internal.MsgInternal, err)
	case closeErr != nil:
		_ = s.fs.Remove(name)
		return "", internal.NewInternalError(internal.MsgInternal, closeErr)
	case n > s.maxBytes:
		_ = s.fs.Remove(name)
		return "", internal.NewValidationFieldError("image", msgTooLarge, internal.ErrCodeInvalidFile)
	case n == 0:
		_ = s.fs.Remove(name)
		return "", internal.NewValidationFieldError("image", msgEmptyFile, internal.ErrCodeInvalidFile)
	}

	return path.Join(s.prefix, name), nil
}

// Remove deletes the file behind a public path produced by SaveImage. Paths
// outside the prefix and files that are already gone are ignored.
func (s *ImageStore) Remove(ctx context.Context, publicPath string) error {
	name, ok := s.nameOf(publicPath)
	if !ok {
		return nil
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image %s: %w", name, err)
	}
	return nil
}

func (s *ImageStore) Exists(publicPath string) bool {
	name, ok := s.nameOf(publicPath)
	if !ok {
		return false
	}
	found, err := afero.Exists(s.fs, name)
	return err == nil && found
}

// Ping verifies the upload directory is present and writable.
func (s *ImageStore) Ping(ctx context.Context) error {
	if err := s.fs.MkdirAll(".", 0o755); err != nil {
		return err
	}
	marker := ".ping-" + uuid.NewString()
	if err := afero.WriteFile(s.fs, marker, nil, 0o644); err != nil {
		return err
	}
	return s.fs.Remove(marker)
}

func (s *ImageStore) nameOf(publicPath string) (string, bool) {
	rest, ok := strings.CutPrefix(publicPath, s.prefix+"/")
	if !ok || rest == "" || strings.ContainsAny(rest, `/\`) || rest == ".." {
		return "", false
	}
	return rest, true
}
