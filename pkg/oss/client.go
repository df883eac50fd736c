package oss

import (
	"Petly/config"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

func GetOssClient(conf *config.OssConfig) *oss.Client {
	var provider credentials.CredentialsProvider
	if conf.AccessKeyID != "" {
		provider = credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret)
	} else {
		provider = credentials.NewEnvironmentVariableCredentialsProvider()
	}
	cfg := oss.LoadDefaultConfig().WithCredentialsProvider(provider).
		WithEndpoint(conf.Endpoint).WithRegion(conf.Region)
	return oss.NewClient(cfg)
}

// Bucket stores public objects and returns their CDN url.
type Bucket struct {
	client *oss.Client
	name   string
	domain string
}

func NewBucket(conf *config.OssConfig) *Bucket {
	return &Bucket{
		client: GetOssClient(conf),
		name:   conf.Bucket,
		domain: strings.TrimRight(conf.PublicDomain, "/"),
	}
}

func (b *Bucket) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	req := &oss.PutObjectRequest{
		Bucket: oss.Ptr(b.name),
		Key:    oss.Ptr(key),
		Body:   body,
	}
	if contentType != "" {
		req.ContentType = oss.Ptr(contentType)
	}
	if _, err := b.client.PutObject(ctx, req); err != nil {
		return "", fmt.Errorf("oss put %s: %w", key, err)
	}
	return b.URL(key), nil
}

func (b *Bucket) URL(key string) string {
	return b.domain + "/" + key
}
