package model

import "errors"

const (
	MaxMediaSizeBytes  = 100 * 1024 * 1024
	MaxAvatarSizeBytes = 5 * 1024 * 1024
	AvatarWidth        = 400
	AvatarHeight       = 400
	ThumbnailWidth     = 480
	ThumbnailHeight    = 270
	UploadFolder       = "uploads"
	AvatarFolder       = "avatars"
	ThumbnailFolder    = "thumbnails"
	ImageCacheControl  = "public, max-age=31536000"
	DefaultContentType = "application/octet-stream"
)

// Supported image content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
	ContentTypeWebP: {},
}

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// UploadResult describes a stored object.
// Key is the object key inside the bucket, needed to delete it later.
type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Bucket      string `json:"bucket"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
}

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
	ErrStorageDisabled  = errors.New("object storage is not configured")
)
