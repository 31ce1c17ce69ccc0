package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ErrPersistence wraps every failed table operation.
var ErrPersistence = errors.New("persistence failed")

type DynamoDBAPI interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type Store struct {
	client DynamoDBAPI
	table  string
	log    *zap.Logger
}

func NewStore(client DynamoDBAPI, table string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{client: client, table: table, log: log}
}

// SetDetectArt sets the detectArt flag on the record with the given id.
// It is a blind write: no existence check and no version guard.
func (s *Store) SetDetectArt(ctx context.Context, id string, value bool) error {
	key, err := attributevalue.MarshalMap(map[string]string{KeyAttribute: id})
	if err != nil {
		return fmt.Errorf("%w: marshal key: %w", ErrPersistence, err)
	}
	v, err := attributevalue.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: marshal value: %w", ErrPersistence, err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(s.table),
		Key:                      key,
		UpdateExpression:         aws.String("SET #flag = :flag"),
		ExpressionAttributeNames: map[string]string{"#flag": DetectArtAttribute},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":flag": v,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: update %s: %w", ErrPersistence, id, err)
	}

	s.log.Debug("Record updated",
		zap.String("table", s.table),
		zap.String("artwork_id", id),
		zap.Bool(DetectArtAttribute, value))
	return nil
}

// List scans the whole table.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	var out []Record
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", ErrPersistence, s.table, err)
		}
		var recs []Record
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &recs); err != nil {
			return nil, fmt.Errorf("%w: decode scan page: %w", ErrPersistence, err)
		}
		out = append(out, recs...)
	}
	return out, nil
}
