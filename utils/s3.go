package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var s3Client *s3.Client

// InitS3 prepares the shared S3 client. Uploads fail until this is called.
func InitS3() error {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "ap-southeast-1"
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	s3Client = s3.NewFromConfig(cfg)
	return nil
}

// UploadBase64ImageToS3 stores a data-URI image under the given key prefix and
// returns a public URL for it.
func UploadBase64ImageToS3(dataURI, keyPrefix string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("s3 client not initialised")
	}

	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid image data")
	}

	ext := ".jpg"
	mime := parts[0]
	switch {
	case strings.Contains(mime, "image/png"):
		ext = ".png"
	case strings.Contains(mime, "image/webp"):
		ext = ".webp"
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return "", fmt.Errorf("S3_BUCKET not configured")
	}

	key := fmt.Sprintf("%s-%d%s", keyPrefix, time.Now().Unix(), ext)
	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(decoded),
		ACL:    s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if cdn := os.Getenv("CLOUDFRONT_URL"); cdn != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(cdn, "/"), key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key), nil
}
