package main

import (
	"context"
	"flag"
	"os"

	"github.com/aws/aws-lambda-go/events"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qq-zhong/artChart-Triggers/internal/classifier"
	"github.com/qq-zhong/artChart-Triggers/internal/config"
	"github.com/qq-zhong/artChart-Triggers/internal/processor"
	"github.com/qq-zhong/artChart-Triggers/internal/records"
	"github.com/qq-zhong/artChart-Triggers/internal/storage"
	"github.com/qq-zhong/artChart-Triggers/pkg/logger"
)

// Runs a single synthetic INSERT through the trigger pipeline and prints
// the outcome, without Lambda or a stream.
func main() {
	configPath := flag.String("config", "", "Path to config.json (default ./config.json if present)")
	id := flag.String("id", "", "Artwork ID (default: random UUID)")
	imageURL := flag.String("image-url", "", "Image locator, e.g. https://host/o/images%2Fcat.png?alt=media")
	flag.Parse()

	cfg, err := config.Load(*configPath)
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

	if *imageURL == "" {
		log.Fatal("Usage: go run ./cmd/local -image-url <locator> [-id <artworkId>] [-config <path>]")
	}
	if err := cfg.ValidateTrigger(); err != nil {
		log.Fatal("Invalid config", zap.Error(err))
	}
	if *id == "" {
		*id = uuid.NewString()
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		log.Fatal("Failed to load AWS config", zap.Error(err))
	}

	h := processor.New(
		storage.NewFetcher(storage.NewS3Client(awsCfg, cfg.Storage), cfg.Storage.Bucket, log),
		classifier.New(cfg.OpenAI.APIKey,
			classifier.WithEndpoint(cfg.OpenAI.Endpoint),
			classifier.WithModel(cfg.OpenAI.Model),
			classifier.WithMaxTokens(cfg.OpenAI.MaxTokens),
			classifier.WithLogger(log),
		),
		records.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Records.Table, log),
		log,
	)

	rec, err := records.FromStreamImage(
		map[string]events.DynamoDBAttributeValue{records.KeyAttribute: events.NewStringAttribute(*id)},
		map[string]events.DynamoDBAttributeValue{"imageUrl": events.NewStringAttribute(*imageURL)},
	)
	if err != nil {
		log.Fatal("Failed to build record", zap.Error(err))
	}

	out := h.Process(ctx, rec)
	log.Info("Done",
		zap.String("artwork_id", out.RecordID),
		zap.Stringer("status", out.Status),
		zap.String("response", out.Verdict),
		zap.String("category", processor.Category(out.Err)),
		zap.Error(out.Err))
}
