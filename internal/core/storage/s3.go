package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Opts struct {
	Bucket        string
	Region        string
	Endpoint      string // 兼容 MinIO 等 S3 服务
	PublicBaseURL string
}

type S3 struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3 bucket 为空时返回 nil，调用方据此禁用上传
func NewS3(ctx context.Context, o Opts) (*S3, error) {
	if o.Bucket == "" {
		return nil, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(o.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	base := strings.TrimRight(o.PublicBaseURL, "/")
	if base == "" {
		if o.Endpoint != "" {
			base = strings.TrimRight(o.Endpoint, "/") + "/" + o.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", o.Bucket, o.Region)
		}
	}
	return &S3{client: client, bucket: o.Bucket, baseURL: base}, nil
}

// Put 上传对象并返回公开访问地址
func (s *S3) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
