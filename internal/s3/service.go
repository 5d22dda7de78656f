package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pathways-hq/pathways/internal/config"
	ierr "github.com/pathways-hq/pathways/internal/errors"
)

// Bucket selects which configured bucket an object lives in
type Bucket string

const (
	BucketDocuments Bucket = "documents"
	BucketReports   Bucket = "reports"
)

type Service interface {
	Upload(ctx context.Context, bucket Bucket, key string, contentType string, body []byte) error
	GetPresignedURL(ctx context.Context, bucket Bucket, key string) (string, error)
	Download(ctx context.Context, bucket Bucket, key string) ([]byte, error)
	Exists(ctx context.Context, bucket Bucket, key string) (bool, error)
	Delete(ctx context.Context, bucket Bucket, key string) error
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
}

// NewService builds the object storage service. Returns nil when
// object storage is disabled; callers must treat a nil service as
// storage unavailable.
func NewService(cfg *config.Configuration) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.S3.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return &s3ServiceImpl{
		config: &cfg.S3,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

func (s *s3ServiceImpl) bucketName(bucket Bucket) (string, error) {
	switch bucket {
	case BucketDocuments:
		return s.config.DocumentBucket, nil
	case BucketReports:
		return s.config.ReportBucket, nil
	default:
		return "", ierr.NewErrorf("invalid bucket: %s", bucket).
			WithHint("Bucket must be documents or reports").
			Mark(ierr.ErrSystem)
	}
}

func (s *s3ServiceImpl) Upload(ctx context.Context, bucket Bucket, key string, contentType string, body []byte) error {
	name, err := s.bucketName(bucket)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(name),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHintf("failed to upload object %s", key).
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

func (s *s3ServiceImpl) GetPresignedURL(ctx context.Context, bucket Bucket, key string) (string, error) {
	name, err := s.bucketName(bucket)
	if err != nil {
		return "", err
	}

	expiry := time.Duration(s.config.PresignExpiryMin) * time.Minute
	presignClient := s3.NewPresignClient(s.client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", ierr.WithError(err).
			WithHintf("failed to presign object %s", key).
			Mark(ierr.ErrHTTPClient)
	}

	return req.URL, nil
}

func (s *s3ServiceImpl) Download(ctx context.Context, bucket Bucket, key string) ([]byte, error) {
	name, err := s.bucketName(bucket)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("failed to download object %s", key).
			Mark(ierr.ErrHTTPClient)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("failed to read object %s", key).
			Mark(ierr.ErrHTTPClient)
	}
	return body, nil
}

func (s *s3ServiceImpl) Exists(ctx context.Context, bucket Bucket, key string) (bool, error) {
	name, err := s.bucketName(bucket)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		var nf *s3types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return false, nil
		}
		return false, ierr.NewErrorf("failed to check if object exists: %v", err).
			Mark(ierr.ErrHTTPClient)
	}

	return true, nil
}

func (s *s3ServiceImpl) Delete(ctx context.Context, bucket Bucket, key string) error {
	name, err := s.bucketName(bucket)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHintf("failed to delete object %s", key).
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

// DocumentKey builds the object key for an archived candidate document
func DocumentKey(candidateID, documentID, fileName string) string {
	return fmt.Sprintf("documents/%s/%s/%s", candidateID, documentID, fileName)
}

// ReportKey builds the object key for an exported report
func ReportKey(exportID string) string {
	return fmt.Sprintf("reports/%s.csv", exportID)
}
