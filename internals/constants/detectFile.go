package constants

import (
	"path/filepath"
	"strings"
)

const (
	MaterialVideo = "video"
	MaterialPDF   = "pdf"
	MaterialImage = "image"
	MaterialLink  = "link"
)

// DetectMaterialType maps a sniffed content type (or, failing that, the
// file extension) to a material type. Empty when unknown.
func DetectMaterialType(contentType, filename string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "video/"):
		return MaterialVideo
	case strings.HasPrefix(ct, "image/"):
		return MaterialImage
	case ct == "application/pdf":
		return MaterialPDF
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".webm", ".mkv", ".avi":
		return MaterialVideo
	case ".pdf":
		return MaterialPDF
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return MaterialImage
	default:
		return ""
	}
}

func IsMaterialType(t string) bool {
	switch t {
	case MaterialVideo, MaterialPDF, MaterialImage, MaterialLink:
		return true
	}
	return false
}
