package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Game artwork uploads go to Cloudflare R2 (S3-compatible). All of this is
// optional: when R2 env vars are absent, ArtworkStorageConfigured reports
// false and managers supply image references as plain URLs.

// ArtworkStorageConfigured reports whether the R2 credentials are present.
func ArtworkStorageConfigured() bool {
	return os.Getenv("R2_ACCOUNT_ID") != "" &&
		os.Getenv("R2_ACCESS_KEY_ID") != "" &&
		os.Getenv("R2_SECRET_ACCESS_KEY") != "" &&
		os.Getenv("R2_BUCKET_NAME") != ""
}

func getR2Config() (aws.Config, error) {
	accountID := os.Getenv("R2_ACCOUNT_ID")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")

	if accountID == "" || accessKey == "" || secretKey == "" {
		return aws.Config{}, fmt.Errorf("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, atau R2_SECRET_ACCESS_KEY belum diatur")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"), // Required by SDK, R2 ignores this
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("gagal load R2 config: %w", err)
	}
	return cfg, nil
}

func getR2Client() (*s3.Client, error) {
	accountID := os.Getenv("R2_ACCOUNT_ID")
	if accountID == "" {
		return nil, fmt.Errorf("R2_ACCOUNT_ID belum diatur")
	}

	cfg, err := getR2Config()
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return client, nil
}

func getR2Bucket() (string, error) {
	bucket := os.Getenv("R2_BUCKET_NAME")
	if bucket == "" {
		return "", fmt.Errorf("R2_BUCKET_NAME belum diatur")
	}
	return bucket, nil
}

// UploadArtwork stores a game artwork object in R2.
func UploadArtwork(objectName string, file io.Reader) error {
	bucket, err := getR2Bucket()
	if err != nil {
		return err
	}

	client, err := getR2Client()
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(path.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(objectName),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("R2 upload gagal: %w", err)
	}
	return nil
}

// ArtworkSignedURL returns a presigned GET URL for an uploaded artwork object.
func ArtworkSignedURL(objectName string, expirySeconds int64) (string, error) {
	bucket, err := getR2Bucket()
	if err != nil {
		return "", err
	}

	client, err := getR2Client()
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(client)

	presigned, err := presigner.PresignGetObject(context.TODO(),
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(objectName),
		},
		func(po *s3.PresignOptions) {
			po.Expires = time.Duration(expirySeconds) * time.Second
		},
	)
	if err != nil {
		return "", fmt.Errorf("gagal presign R2 URL: %w", err)
	}
	return presigned.URL, nil
}

// UploadArtworkAndPresign uploads the artwork and returns a presigned URL.
func UploadArtworkAndPresign(objectName string, file io.Reader, expirySeconds int64) (string, error) {
	if err := UploadArtwork(objectName, file); err != nil {
		return "", err
	}
	return ArtworkSignedURL(objectName, expirySeconds)
}

// ArtworkObjectFromURL recovers the R2 object key from a stored image
// reference. Plain external image URLs report false and are left alone.
func ArtworkObjectFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(u.Host, ".r2.cloudflarestorage.com") {
		return "", false
	}
	bucket := os.Getenv("R2_BUCKET_NAME")
	if bucket == "" {
		return "", false
	}
	prefix := "/" + bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// DeleteArtwork removes an artwork object from R2.
func DeleteArtwork(objectName string) error {
	bucket, err := getR2Bucket()
	if err != nil {
		return err
	}

	client, err := getR2Client()
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("R2 delete gagal: %w", err)
	}
	return nil
}
