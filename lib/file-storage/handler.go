package filestorage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	IsConfigured() bool
	UploadJobDescriptionPdf(ctx context.Context, jrID string, file []byte) (objectName string, err error)
}

var Instance Provider

func NewHandler(client *minio.Client, bucketName string) {
	Instance = NewInstance(client, bucketName)
}

func NewInstance(client *minio.Client, bucketName string) Provider {
	return impl{
		client:     client,
		bucketName: bucketName,
	}
}

type impl struct {
	client     *minio.Client
	bucketName string
}

func (i impl) IsConfigured() bool {
	return i.client != nil && i.bucketName != ""
}

func (i impl) UploadJobDescriptionPdf(ctx context.Context, jrID string, file []byte) (string, error) {
	if !i.IsConfigured() {
		return "", errors.New("file storage is not configured")
	}
	objectName := jobDescriptionObjectName(jrID)
	_, err := i.client.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload job description")
	}
	log.
		WithField("bucket", i.bucketName).
		WithField("object", objectName).
		Info("job description archived")
	return objectName, nil
}

func jobDescriptionObjectName(jrID string) string {
	return fmt.Sprintf("job-descriptions/%s.pdf", jrID)
}
