package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Blob is a downloaded object ready to be sent over a text transport.
type Blob struct {
	Path    string
	Data    []byte
	Encoded string
	// Exif is nil when the image carries no readable EXIF block.
	Exif *ExifSummary
}

type Fetcher struct {
	client S3API
	bucket string
	log    *zap.Logger
}

func NewFetcher(client S3API, bucket string, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{client: client, bucket: bucket, log: log}
}

// Fetch resolves locator to an object in the bucket, downloads it and
// base64-encodes it. Errors wrap ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, locator string) (*Blob, error) {
	path, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}

	f.log.Info("Fetching object from storage",
		zap.String("bucket", f.bucket),
		zap.String("path", path))

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get object %q: %w", ErrFetch, path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read object %q: %w", ErrFetch, path, err)
	}

	return &Blob{
		Path:    path,
		Data:    data,
		Encoded: base64.StdEncoding.EncodeToString(data),
		Exif:    inspectExif(data),
	}, nil
}
