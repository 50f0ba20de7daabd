package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/infrastructure/config"
)

// ObjectStore 对象存储（头像、封面）
type ObjectStore interface {
	// Put 上传对象，返回可公开访问的URL
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// MinioStore MinIO/S3兼容存储
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore 连接MinIO，bucket不存在时自动创建
func NewMinioStore(cfg *config.Config, log *zap.Logger) (*MinioStore, error) {
	sc := cfg.Storage
	client, err := minio.New(sc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(sc.AccessKey, sc.SecretKey, ""),
		Secure: sc.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化MinIO客户端失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, sc.Bucket)
	if err != nil {
		return nil, fmt.Errorf("检查bucket失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, sc.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建bucket失败: %w", err)
		}
		log.Info("已创建bucket", zap.String("bucket", sc.Bucket))
	}

	return &MinioStore{
		client:  client,
		bucket:  sc.Bucket,
		baseURL: PublicBaseURL(sc),
	}, nil
}

func (m *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("上传对象失败: %w", err)
	}
	return m.baseURL + "/" + key, nil
}

func (m *MinioStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("删除对象失败: %w", err)
	}
	return nil
}

// PublicBaseURL 对象URL前缀
// 未配置public_base_url时使用 scheme://endpoint/bucket
func PublicBaseURL(sc config.StorageConfig) string {
	if sc.PublicBaseURL != "" {
		return strings.TrimRight(sc.PublicBaseURL, "/")
	}
	scheme := "http"
	if sc.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, sc.Endpoint, sc.Bucket)
}
