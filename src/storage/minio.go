package storage

import (
	"context"
	"log"

	"appealapp/src/config"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var Client *minioSDK.Client
var BucketName string

// InitMinio connects to MinIO and ensures the attachment bucket exists.
func InitMinio() {
	BucketName = config.MinioBucket

	minioClient, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, BucketName)
	if err != nil {
		log.Fatalf("Failed to check bucket existence: %v", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, BucketName, minioSDK.MakeBucketOptions{}); err != nil {
			log.Fatalf("Failed to create bucket: %v", err)
		}
		log.Printf("Bucket created: %s", BucketName)
	}

	Client = minioClient
	log.Println("Successfully connected to MinIO")
}
