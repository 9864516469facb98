package storage

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalBlobService writes uploads to a directory served statically.
type LocalBlobService struct {
	Dir        string
	PublicPath string // e.g. /uploads
}

func NewLocalBlobService(dir, publicPath string) *LocalBlobService {
	if dir == "" {
		dir = "./uploads"
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &LocalBlobService{Dir: dir, PublicPath: "/" + strings.Trim(publicPath, "/")}
}

func (s *LocalBlobService) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if err := checkSize(fh); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	name := GenerateFileName(fh.Filename)
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "create upload file")
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", errors.Wrap(err, "write upload file")
	}
	if err := dst.Close(); err != nil {
		return "", errors.Wrap(err, "close upload file")
	}
	return path.Join(s.PublicPath, name), nil
}

// Delete ignores URLs outside PublicPath (external links) and missing files.
func (s *LocalBlobService) Delete(ctx context.Context, publicURL string) error {
	prefix := s.PublicPath + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(publicURL, prefix))
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove upload file")
	}
	return nil
}
