package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/Divahar2507/pitchconnect-backend/internal/config"
	"github.com/Divahar2507/pitchconnect-backend/internal/services"
	"github.com/Divahar2507/pitchconnect-backend/pkg/utils"
)

func getS3Client() (*s3.Client, error) {
	cfg := appConfig.AppConfig
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// uploadAttachment stores a message attachment in R2 and returns the
// public reference recorded on the message.
func uploadAttachment(file multipart.File, header *multipart.FileHeader) (*services.Attachment, error) {
	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("pitchconnect/attachments/%s%s", utils.GenerateID(), ext)

	client, err := getS3Client()
	if err != nil {
		return nil, err
	}

	cfg := appConfig.AppConfig
	contentType := header.Header.Get("Content-Type")
	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(cfg.R2BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, err
	}

	// Public URL construction depends on R2 setup (custom domain or r2.dev)
	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}

	return &services.Attachment{
		URL:      fmt.Sprintf("%s/%s", publicURL, key),
		MimeType: contentType,
	}, nil
}
