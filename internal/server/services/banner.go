package services

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophforum/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// BannerSigner turns category banner object keys into temporary download
// URLs on the S3-compatible store.
type BannerSigner struct {
	region   string
	user     string
	password string
	endpoint string
	bucket   string
	validity time.Duration
}

func NewBannerSigner(cfg *config.Config) *BannerSigner {
	return &BannerSigner{
		region:   cfg.S3Region,
		user:     cfg.S3RootUser,
		password: cfg.S3RootPassword,
		endpoint: cfg.S3BaseEndpoint,
		bucket:   cfg.S3Bucket,
		validity: cfg.BannerURLValidity,
	}
}

func (b *BannerSigner) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(b.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(b.user, b.password, "")),
	)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(b.endpoint)
		o.UsePathStyle = true
	})
	return newS3PresignClient(client), nil
}

// SignAll presigns every key and returns URLs by key. It builds one
// client for the whole batch.
func (b *BannerSigner) SignAll(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	pc, err := b.presignClient(ctx)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if _, done := out[key]; done {
			continue
		}
		req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
			Bucket: aws.String(b.bucket),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(b.validity))
		if err != nil {
			return nil, err
		}
		out[key] = req.URL
	}
	return out, nil
}
