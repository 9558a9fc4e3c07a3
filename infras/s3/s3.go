package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"tzbot/config"
	"tzbot/infras/otel"
	"tzbot/shared/constant"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
	otelAttrSize     = "size"
)

// S3 uploads snapshot backups. Enabled is false when no bucket is configured,
// in which case uploads are skipped.
type S3 interface {
	Enabled() bool
	UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (key string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) Enabled() bool {
	return true
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (key string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucketName := svc.Config.Backup.S3.BucketName
	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   bucketName,
		otelAttrSize:     len(fileData),
	})

	fileReader := bytes.NewReader(fileData)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", bucketName).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return objectKey, nil
}

type disabled struct{}

func (disabled) Enabled() bool { return false }

func (disabled) UploadFileBytes(context.Context, string, string, string, []byte) (string, error) {
	return constant.Empty, nil
}

func New(config *config.Config, otel otel.Otel) S3 {
	backup := config.Backup.S3
	if !backup.Enable || backup.BucketName == "" {
		log.Debug().Msg("S3 snapshot backup disabled")

		return disabled{}
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		backup.AccessKeyID,
		backup.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(backup.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration, S3 snapshot backup disabled")

		return disabled{}
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if backup.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(backup.APIEndpoint)
		}
		o.UsePathStyle = true
	})

	log.Info().Str("bucket", backup.BucketName).Str("directory", backup.Directory).Msg("S3 snapshot backup enabled")

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
