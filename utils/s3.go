package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client *s3.Client
	s3Bucket string
	s3Prefix string
)

// InitS3 sets up the optional diet-photo archive. Without S3_BUCKET the
// archive is disabled and ArchiveDietPhoto is a no-op.
func InitS3() {
	s3Bucket = os.Getenv("S3_BUCKET")
	if s3Bucket == "" {
		log.Printf("diet photo archive disabled: S3_BUCKET not set")
		return
	}

	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Printf("diet photo archive disabled: %v", err)
		return
	}

	s3Prefix = os.Getenv("S3_PREFIX")
	if s3Prefix == "" {
		s3Prefix = "diet"
	}
	s3Client = s3.NewFromConfig(cfg)
}

// ArchiveDietPhoto copies a photo to S3 for backup. Best effort only:
// failures are logged and never reach the caller, and local state is the
// source of truth regardless of the archive outcome.
func ArchiveDietPhoto(dateKey, category, photoID, base64Data string) {
	if s3Client == nil {
		return
	}

	contentType, imageData, err := decodeDataURI(base64Data)
	if err != nil {
		log.Printf("photo archive skipped for %s: %v", photoID, err)
		return
	}

	key := fmt.Sprintf("%s/%s/%s/%s%s", s3Prefix, dateKey, category, photoID, extensionFor(contentType))

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("photo archive failed for %s: %v", photoID, err)
	}
}

// decodeDataURI splits "data:<mime>;base64,<data>" into its content type
// and raw bytes.
func decodeDataURI(base64Data string) (string, []byte, error) {
	parts := strings.Split(base64Data, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return "", nil, fmt.Errorf("invalid base64 image")
	}

	mediaType := strings.SplitN(parts[0], ":", 2)[1]    // "image/jpeg;base64"
	contentType := strings.SplitN(mediaType, ";", 2)[0] // "image/jpeg"

	imageData, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image: %v", err)
	}
	return contentType, imageData, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}
