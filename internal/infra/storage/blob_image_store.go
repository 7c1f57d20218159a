// Package storage keeps profile images in a gocloud blob bucket.
package storage

import (
	"context"
	"encoding/base64"
	"log/slog"
	"mime"
	"net/url"
	"path"
	"strings"

	"playground/config"
	domainerrors "playground/internal/domain/errors"
	"playground/internal/domain/lifecycle"
	"playground/internal/domain/service"
	"playground/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const avatarPrefix = "avatars"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobImageStore struct {
	bucket  *blob.Bucket
	baseURL string
	newKey  func() string
}

// New opens the configured bucket and closes it when the application stops.
func New(params Params) (service.ImageStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket url must be provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing image bucket")

			return bucket.Close()
		},
	})

	return NewBlobImageStore(bucket, cfg.PublicBaseURL), nil
}

// NewBlobImageStore wraps an open bucket. Uploaded keys are published under baseURL.
func NewBlobImageStore(bucket *blob.Bucket, baseURL string) service.ImageStore {
	return &blobImageStore{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		newKey:  func() string { return uuid.NewString() },
	}
}

// Upload stores a data: URL image and returns its public URL.
// Hosted http(s) URLs are returned unchanged and an empty URL stays empty.
func (s *blobImageStore) Upload(ctx context.Context, owner, imgURL string) (string, error) {
	imgURL = strings.TrimSpace(imgURL)
	if imgURL == "" {
		return "", nil
	}
	if u, err := url.Parse(imgURL); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return imgURL, nil
	}

	contentType, data, err := decodeDataURL(imgURL)
	if err != nil {
		return "", domainerrors.ErrImageUpload.WithDetails(err.Error())
	}

	key := path.Join(avatarPrefix, owner, s.newKey()+extensionFor(contentType))
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", domainerrors.ErrImageUpload.WithDetails(err.Error())
	}

	return s.baseURL + "/" + key, nil
}

// decodeDataURL parses data:[<mediatype>][;base64],<data> for image media types.
func decodeDataURL(raw string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return "", nil, errors.New("image must be a data url or an http(s) url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("malformed data url")
	}

	isBase64 := false
	if trimmed, found := strings.CutSuffix(meta, ";base64"); found {
		meta = trimmed
		isBase64 = true
	}
	mediaType, _, err := mime.ParseMediaType(meta)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", nil, errors.Errorf("unsupported media type %q", meta)
	}

	if !isBase64 {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, errors.Wrap(err, "malformed data url payload")
		}

		return mediaType, []byte(decoded), nil
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(err, "malformed base64 payload")
	}
	if len(data) == 0 {
		return "", nil, errors.New("empty image")
	}

	return mediaType, data, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ""
}
