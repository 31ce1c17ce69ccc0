package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/qq-zhong/artChart-Triggers/internal/config"
	"github.com/qq-zhong/artChart-Triggers/internal/gallery"
	"github.com/qq-zhong/artChart-Triggers/internal/records"
	"github.com/qq-zhong/artChart-Triggers/internal/storage"
	"github.com/qq-zhong/artChart-Triggers/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		os.Stderr.WriteString("CRITICAL: Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		os.Stderr.WriteString("CRITICAL: Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", zap.Error(err))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		log.Fatal("Failed to load AWS config", zap.Error(err))
	}

	h := gallery.New(
		s3.NewPresignClient(storage.NewS3Client(awsCfg, cfg.Storage)),
		records.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Records.Table, log),
		cfg.Storage.Bucket,
		cfg.Storage.LocatorBase,
		log,
	)

	lambda.Start(h.Handle)
}
