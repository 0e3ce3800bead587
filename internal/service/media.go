package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/config"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

// ObjectStore is the subset of the S3 client the media service calls.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ContentMedia is the stored media of one content item.
type ContentMedia struct {
	Media     model.UploadResult
	MediaType model.MediaType
	Thumbnail *model.UploadResult
}

// MediaService stores uploaded files in an S3-compatible bucket.
type MediaService struct {
	store     ObjectStore
	bucket    string
	publicURL string
	logger    *zap.Logger
	now       func() time.Time
}

// NewMediaService builds an S3 client from cfg. A custom S3_ENDPOINT switches
// to path-style addressing for R2 and MinIO.
func NewMediaService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*MediaService, error) {
	if !cfg.StorageEnabled() {
		return nil, model.ErrStorageDisabled
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewMediaServiceWithStore(client, cfg.S3Bucket, publicBaseURL(cfg), logger), nil
}

// NewMediaServiceWithStore wires an already constructed object store.
func NewMediaServiceWithStore(store ObjectStore, bucket, publicURL string, logger *zap.Logger) *MediaService {
	return &MediaService{
		store:     store,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger.Named("MediaService"),
		now:       time.Now,
	}
}

func publicBaseURL(cfg *config.Config) string {
	switch {
	case cfg.S3PublicURL != "":
		return cfg.S3PublicURL
	case cfg.S3Endpoint != "":
		return strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
}

// Upload stores an arbitrary file under uploads/<unixMillis>-<random><ext>.
func (s *MediaService) Upload(ctx context.Context, up model.Upload) (*model.UploadResult, error) {
	data, contentType, err := readUpload(up, model.MaxMediaSizeBytes)
	if err != nil {
		return nil, err
	}
	return s.putObject(ctx, s.objectKey(up.Filename), data, contentType, "")
}

// UploadContent stores content media. Images also get a thumbnail; a failed
// thumbnail is logged and left out.
func (s *MediaService) UploadContent(ctx context.Context, up model.Upload) (*ContentMedia, error) {
	data, contentType, err := readUpload(up, model.MaxMediaSizeBytes)
	if err != nil {
		return nil, err
	}

	mediaType := model.MediaTypeVideo
	if strings.HasPrefix(contentType, "image/") {
		mediaType = model.MediaTypeImage
	}

	res, err := s.putObject(ctx, s.objectKey(up.Filename), data, contentType, "")
	if err != nil {
		return nil, err
	}
	out := &ContentMedia{Media: *res, MediaType: mediaType}

	if mediaType == model.MediaTypeImage {
		thumb, err := resizeToJPEG(data, model.ThumbnailWidth, model.ThumbnailHeight, 80)
		if err != nil {
			s.logger.Warn("thumbnail generation failed", zap.String("key", res.Key), zap.Error(err))
			return out, nil
		}
		key := fmt.Sprintf("%s/%s.jpg", model.ThumbnailFolder, uuid.NewString())
		tres, err := s.putObject(ctx, key, thumb, model.ContentTypeJPEG, model.ImageCacheControl)
		if err != nil {
			s.logger.Warn("thumbnail upload failed", zap.String("key", key), zap.Error(err))
			return out, nil
		}
		out.Thumbnail = tres
	}
	return out, nil
}

// UploadAvatar enforces size and type, normalizes to a square JPEG and stores it.
func (s *MediaService) UploadAvatar(ctx context.Context, up model.Upload) (*model.UploadResult, error) {
	data, contentType, err := readUpload(up, model.MaxAvatarSizeBytes)
	if err != nil {
		return nil, err
	}
	if !model.IsAllowedImageType(contentType) {
		return nil, model.ErrInvalidImageType
	}

	jpegBytes, err := resizeToJPEG(data, model.AvatarWidth, model.AvatarHeight, 85)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s.jpg", model.AvatarFolder, uuid.NewString())
	return s.putObject(ctx, key, jpegBytes, model.ContentTypeJPEG, model.ImageCacheControl)
}

// DeleteObject removes an object by key. An empty key is a no-op.
func (s *MediaService) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.store.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *MediaService) objectKey(filename string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d-%s%s", model.UploadFolder, s.now().UnixMilli(), random, ext)
}

func (s *MediaService) putObject(ctx context.Context, key string, body []byte, contentType, cacheControl string) (*model.UploadResult, error) {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}
	if cacheControl != "" {
		in.CacheControl = aws.String(cacheControl)
	}
	if _, err := s.store.PutObject(ctx, in); err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	s.logger.Debug("object stored", zap.String("key", key), zap.Int("bytes", len(body)))
	return &model.UploadResult{
		URL:         s.publicURL + "/" + key,
		Key:         key,
		Bucket:      s.bucket,
		ContentType: contentType,
		FileSize:    int64(len(body)),
	}, nil
}

// readUpload loads the upload into memory with a size limit and resolves its
// content type, sniffing when the client sent none.
func readUpload(up model.Upload, maxSize int64) ([]byte, string, error) {
	if up.Body == nil {
		return nil, "", model.ErrMediaRequired
	}
	if up.Size > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(up.Body, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", model.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, "", model.ErrMediaRequired
	}

	contentType := up.ContentType
	if contentType == "" || contentType == model.DefaultContentType {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return data, contentType, nil
}

// resizeToJPEG center-crops to the target size and encodes as JPEG.
func resizeToJPEG(data []byte, width, height, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	resized := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
