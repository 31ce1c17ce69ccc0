package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/qq-zhong/artChart-Triggers/internal/classifier"
	"github.com/qq-zhong/artChart-Triggers/internal/config"
	"github.com/qq-zhong/artChart-Triggers/internal/processor"
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

	if err := cfg.ValidateTrigger(); err != nil {
		log.Fatal("Invalid config", zap.Error(err))
	}

	h, err := newHandler(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to build handler", zap.Error(err))
	}

	lambda.Start(h.Invoke)
}

func newHandler(ctx context.Context, cfg *config.Config, log *zap.Logger) (*processor.Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, err
	}

	return processor.New(
		storage.NewFetcher(storage.NewS3Client(awsCfg, cfg.Storage), cfg.Storage.Bucket, log),
		classifier.New(cfg.OpenAI.APIKey,
			classifier.WithEndpoint(cfg.OpenAI.Endpoint),
			classifier.WithModel(cfg.OpenAI.Model),
			classifier.WithMaxTokens(cfg.OpenAI.MaxTokens),
			classifier.WithLogger(log),
		),
		records.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Records.Table, log),
		log,
	), nil
}
