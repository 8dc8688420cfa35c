package s3client

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Provider interface {
	MakeBucket(ctx context.Context) error
	PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, objectName string) ([]byte, error)
	RemoveObject(ctx context.Context, objectName string) error
}

// Client nil, если S3 не настроен
var Client Provider

type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
}

type s3client struct {
	minioClient *minio.Client
	bucketName  string
}

func NewClient(cfg Config) (Provider, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("не указан адрес S3")
	}
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &s3client{minioClient: minioClient, bucketName: cfg.BucketName}, nil
}

func (s s3client) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := s.minioClient.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.minioClient.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: location})
}

func (s s3client) PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s s3client) GetObject(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := s.minioClient.GetObject(ctx, s.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s s3client) RemoveObject(ctx context.Context, objectName string) error {
	return s.minioClient.RemoveObject(ctx, s.bucketName, objectName, minio.RemoveObjectOptions{})
}
