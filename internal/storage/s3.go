package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Presigner signs PutObject URLs against one bucket.
type S3Presigner struct {
	ps     *s3.PresignClient
	bucket string
}

func NewS3Presigner(ctx context.Context, region, bucket string) (*S3Presigner, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &S3Presigner{
		ps:     s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket: bucket,
	}, nil
}

func (p *S3Presigner) PresignPutObject(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	req, err := p.ps.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
