package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"

	"lms_backend/internals/configs"
)

// OSSBlobService stores uploads in an Aliyun OSS bucket.
type OSSBlobService struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
	Prefix     string
}

func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	endpoint := strings.TrimSpace(configs.GetEnv("ALI_OSS_ENDPOINT"))
	ak := strings.TrimSpace(configs.GetEnv("ALI_OSS_ACCESS_KEY_ID"))
	sk := strings.TrimSpace(configs.GetEnv("ALI_OSS_ACCESS_KEY_SECRET"))
	bucketName := strings.TrimSpace(configs.GetEnv("ALI_OSS_BUCKET"))
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY_ID/ACCESS_KEY_SECRET/BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, errors.Wrap(err, "oss.New")
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, errors.Wrap(err, "client.Bucket")
	}
	log.Printf("[INFO] OSS storage ready: bucket=%s", bucketName)

	return &OSSBlobService{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		PublicBase: strings.TrimRight(configs.GetEnv("ALI_OSS_PUBLIC_BASE"), "/"),
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSBlobService) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if err := checkSize(fh); err != nil {
		return "", err
	}
	key := GenerateFileName(fh.Filename)
	if s.Prefix != "" {
		key = s.Prefix + "/" + key
	}
	ct := DetectContentType(fh)

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(ct),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, src, opts...); err != nil {
		return "", errors.Wrap(err, "oss put object")
	}
	return s.PublicURL(key), nil
}

func (s *OSSBlobService) Delete(ctx context.Context, publicURL string) error {
	key, ok := s.keyFromPublicURL(publicURL)
	if !ok {
		return nil
	}
	if err := s.Bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 404 {
			return nil
		}
		return errors.Wrap(err, "oss delete object")
	}
	return nil
}

func (s *OSSBlobService) PublicURL(key string) string {
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func (s *OSSBlobService) keyFromPublicURL(publicURL string) (string, bool) {
	base := s.PublicURL("")
	if !strings.HasPrefix(publicURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(publicURL, base)
	return key, key != ""
}
