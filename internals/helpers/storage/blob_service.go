package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"lms_backend/internals/configs"
)

/*
BlobService is the upload facade used by controllers. Stored names are
"<unix millis>-<random hex><original ext>", the public URL is what gets
persisted on the record.
*/
type BlobService interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (publicURL string, err error)
	Delete(ctx context.Context, publicURL string) error
}

// New picks the backend from STORAGE_DRIVER (local | oss).
func New() (BlobService, error) {
	switch configs.StorageDriver {
	case "oss":
		return NewOSSBlobServiceFromEnv(configs.Conf.GetString("ALI_OSS_PREFIX"))
	case "", "local":
		return NewLocalBlobService(configs.UploadDir, configs.UploadPublicPath), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", configs.StorageDriver)
	}
}

// GenerateFileName keeps the original extension (lower-cased).
func GenerateFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randHex(4), ext)
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func maxUploadBytes() int64 {
	mb := configs.MaxUploadMB
	if mb <= 0 {
		mb = 20
	}
	return int64(mb) * 1024 * 1024
}

func checkSize(fh *multipart.FileHeader) error {
	if fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Size > maxUploadBytes() {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds %d MB", configs.MaxUploadMB))
	}
	return nil
}

// DetectContentType sniffs the file content, falling back to the extension.
func DetectContentType(fh *multipart.FileHeader) string {
	if fh == nil {
		return "application/octet-stream"
	}
	f, err := fh.Open()
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()
	return detect(f, fh.Filename)
}

func detect(r io.Reader, filename string) string {
	mt, err := mimetype.DetectReader(r)
	if err == nil && mt.String() != "application/octet-stream" {
		return mt.String()
	}
	if mt := mimetype.Lookup(extToMime(filename)); mt != nil {
		return mt.String()
	}
	return "application/octet-stream"
}

func extToMime(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".mp4":
		return "video/mp4"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return ""
}

// DeleteQuietly removes files after a committed delete; failures are logged.
func DeleteQuietly(ctx context.Context, svc BlobService, urls []string) {
	if svc == nil {
		return
	}
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		if err := svc.Delete(ctx, u); err != nil {
			log.Printf("[ERROR] delete blob %s: %v", u, err)
		}
	}
}
