package records

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	KeyAttribute       = "artworkId"
	DetectArtAttribute = "detectArt"
)

// Record is one submitted artwork image.
type Record struct {
	ID        string `json:"artworkId" dynamodbav:"artworkId"`
	ImageURL  string `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
	DetectArt *bool  `json:"detectArt,omitempty" dynamodbav:"detectArt,omitempty"`
}

// FromStreamImage decodes a stream record's keys and new image into a Record.
// Key attributes win over same-named image attributes.
func FromStreamImage(keys, image map[string]events.DynamoDBAttributeValue) (Record, error) {
	item := make(map[string]types.AttributeValue, len(image)+len(keys))
	for name, av := range image {
		item[name] = toSDK(av)
	}
	for name, av := range keys {
		item[name] = toSDK(av)
	}

	var rec Record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return Record{}, fmt.Errorf("decode stream image: %w", err)
	}
	return rec, nil
}

func toSDK(av events.DynamoDBAttributeValue) types.AttributeValue {
	switch av.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: av.String()}
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: av.Number()}
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: av.Boolean()}
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: av.Binary()}
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: av.StringSet()}
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: av.NumberSet()}
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: av.BinarySet()}
	case events.DataTypeList:
		list := av.List()
		out := make([]types.AttributeValue, len(list))
		for i, v := range list {
			out[i] = toSDK(v)
		}
		return &types.AttributeValueMemberL{Value: out}
	case events.DataTypeMap:
		m := av.Map()
		out := make(map[string]types.AttributeValue, len(m))
		for k, v := range m {
			out[k] = toSDK(v)
		}
		return &types.AttributeValueMemberM{Value: out}
	default:
		return &types.AttributeValueMemberNULL{Value: true}
	}
}
