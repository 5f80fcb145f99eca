// internal/services/asset_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/config"
)

const (
	DefaultProductImage = "img/default-product.png"
	bannerSlideCount    = 5
)

// AssetService resolves the storefront's static image paths. With a bucket and
// credentials it hands out presigned S3 URLs; with a CloudFront URL it prefixes
// that; otherwise paths stay relative to the page.
type AssetService struct {
	s3Client *s3.S3
	config   config.AWSConfig
}

func NewAssetService(cfg config.AWSConfig) (*AssetService, error) {
	if cfg.AccessKeyID == "" || cfg.S3Bucket == "" {
		return &AssetService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &AssetService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// URL resolves a relative asset path such as "img/banner-1.jpg". Absolute URLs
// pass through untouched.
func (s *AssetService) URL(path string) string {
	if path == "" || strings.Contains(path, "://") {
		return path
	}
	key := strings.TrimPrefix(path, "/")

	if s.config.CloudFrontURL != "" {
		return strings.TrimSuffix(s.config.CloudFrontURL, "/") + "/" + key
	}
	if s.s3Client != nil {
		url, err := s.presign(key)
		if err == nil {
			return url
		}
		logrus.WithError(err).WithField("key", key).Warn("Falling back to relative asset path")
	}
	return path
}

func (s *AssetService) presign(key string) (string, error) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	})

	ttl := time.Duration(s.config.PresignTTL) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	url, err := req.Presign(ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url, nil
}

// ProductImage returns the product's image, or the placeholder when it has none.
func (s *AssetService) ProductImage(image string) string {
	if strings.TrimSpace(image) == "" {
		return s.URL(DefaultProductImage)
	}
	return s.URL(image)
}

// FallbackImage is swapped in when a product image fails to load.
func (s *AssetService) FallbackImage() string {
	return s.URL(DefaultProductImage)
}

// BannerSlides lists the carousel images in display order.
func (s *AssetService) BannerSlides() []string {
	slides := make([]string, bannerSlideCount)
	for i := range slides {
		slides[i] = s.URL(fmt.Sprintf("img/banner-%d.jpg", i+1))
	}
	return slides
}
