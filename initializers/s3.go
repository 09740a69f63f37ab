package initializers

import (
	"context"
	"hirex-backend/config"
	filestorage "hirex-backend/lib/file-storage"
	s3client "hirex-backend/s3"
	"time"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 is not configured, job description PDFs will not be archived")
		filestorage.NewHandler(nil, "")
		return
	}
	minioClient, err := s3client.Connect(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("failed to create S3 client")
		filestorage.NewHandler(nil, "")
		return
	}
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err = s3client.MakeBucket(checkCtx, minioClient, config.Conf.S3.BucketName)
	if err != nil {
		log.WithError(err).Error("S3 bucket check failed")
	}
	filestorage.NewHandler(minioClient, config.Conf.S3.BucketName)
	log.Info("S3 client initialized")
}
