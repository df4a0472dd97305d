// utils/blob.go
package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Card images live in a private bucket; readers only ever get time-limited
// presigned GET URLs, never the raw object location.
const (
	defaultImageBucket = "card-high-res-images"
	signedURLValidity  = 1 * time.Hour
)

type BlobStore struct {
	presign *s3.PresignClient
	bucket  string
}

func NewBlobStore() (*BlobStore, error) {
	endpoint := os.Getenv("BLOB_ENDPOINT")
	accessKeyID := os.Getenv("BLOB_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("BLOB_ACCESS_KEY_SECRET")
	bucket := os.Getenv("BLOB_BUCKET_NAME")
	if bucket == "" {
		bucket = defaultImageBucket
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load blob store config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &BlobStore{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

// SignedImageURL returns a readable URL for the given image key, valid for one
// hour.
func (b *BlobStore) SignedImageURL(key string) (string, error) {
	req, err := b.presign.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(signedURLValidity))
	if err != nil {
		return "", fmt.Errorf("failed to presign image %s: %w", key, err)
	}
	return req.URL, nil
}
