package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignedUpload is what a browser needs to PUT an object directly to S3.
type PresignedUpload struct {
	URL       string            `json:"url"`
	Key       string            `json:"key"`
	Headers   map[string]string `json:"headers"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// S3Presigner generates presigned PUT URLs for one bucket.
type S3Presigner struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewS3Presigner(cfg sdkaws.Config, bucket string, expiry time.Duration) *S3Presigner {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = CustomEndpoint() != ""
	})
	return &S3Presigner{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		expiry:    expiry,
	}
}

// PresignPut returns a presigned PUT for key with the given content type.
func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string) (*PresignedUpload, error) {
	input := &s3.PutObjectInput{
		Bucket:      sdkaws.String(p.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}

	presigned, err := p.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &PresignedUpload{
		URL:       presigned.URL,
		Key:       key,
		Headers:   headers,
		ExpiresAt: time.Now().Add(p.expiry),
	}, nil
}
