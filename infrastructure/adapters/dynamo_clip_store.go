package adapters

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/config"
	"storyspark-api/domain"
)

type dynamoClipItem struct {
	ClipID       string `dynamodbav:"clip_id"`
	ChildID      string `dynamodbav:"child_id"`
	Status       string `dynamodbav:"status"`
	Payload      string `dynamodbav:"payload"`
	UpdatedAtUTC int64  `dynamodbav:"updated_at"`
}

// dynamoClipStore keeps one item per clip, keyed by clip id. The full clip
// travels as a JSON payload; status and child id are lifted out for the
// recovery scan and the child-filtered listing.
type dynamoClipStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoClipStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.ClipStorePort {
	return &dynamoClipStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoClipStore) Save(ctx context.Context, clip *domain.Clip) error {
	body, err := marshalClip(clip)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal clip", map[string]interface{}{
			"clip_id": clip.ID,
		})
		return err
	}

	item := dynamoClipItem{
		ClipID:       clip.ID,
		ChildID:      clip.ChildID,
		Status:       string(clip.Status),
		Payload:      body,
		UpdatedAtUTC: clip.UpdatedAt.UTC().Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal clip item", map[string]interface{}{
			"clip_id": clip.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.dynamoConfig.TableName),
	}
	if _, err = s.dynamoSvc.PutItemWithContext(ctx, input); err != nil {
		s.logger.ErrorWithFields(err, "Failed to save clip item", map[string]interface{}{
			"clip_id": clip.ID,
		})
		return err
	}
	return nil
}

func (s *dynamoClipStore) Load(ctx context.Context, clipID string) (*domain.Clip, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"clip_id": {S: aws.String(clipID)},
		},
	}

	out, err := s.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to load clip item", map[string]interface{}{
			"clip_id": clipID,
		})
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.ErrClipNotFound
	}

	var item dynamoClipItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return unmarshalClip(item.Payload)
}

func (s *dynamoClipStore) List(ctx context.Context, childID string) ([]*domain.Clip, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.dynamoConfig.TableName),
	}
	if childID != "" {
		input.FilterExpression = aws.String("child_id = :child_id")
		input.ExpressionAttributeValues = map[string]*dynamodb.AttributeValue{
			":child_id": {S: aws.String(childID)},
		}
	}
	return s.scan(ctx, input)
}

func (s *dynamoClipStore) ListNonTerminal(ctx context.Context) ([]*domain.Clip, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.dynamoConfig.TableName),
		FilterExpression: aws.String("#st IN (:pending, :generating, :review, :synthesizing)"),
		ExpressionAttributeNames: map[string]*string{
			"#st": aws.String("status"),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pending":      {S: aws.String(string(domain.ClipPending))},
			":generating":   {S: aws.String(string(domain.ClipGeneratingScript))},
			":review":       {S: aws.String(string(domain.ClipSafetyReview))},
			":synthesizing": {S: aws.String(string(domain.ClipSynthesizing))},
		},
	}
	return s.scan(ctx, input)
}

func (s *dynamoClipStore) scan(ctx context.Context, input *dynamodb.ScanInput) ([]*domain.Clip, error) {
	var clips []*domain.Clip
	err := s.dynamoSvc.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, raw := range page.Items {
			var item dynamoClipItem
			if err := dynamodbattribute.UnmarshalMap(raw, &item); err != nil {
				s.logger.Error(err, "Failed to unmarshal clip item during scan")
				continue
			}
			clip, err := unmarshalClip(item.Payload)
			if err != nil {
				s.logger.Error(err, "Failed to decode clip payload during scan")
				continue
			}
			clips = append(clips, clip)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return clips, nil
}

func marshalClip(clip *domain.Clip) (string, error) {
	body, err := json.Marshal(clip)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func unmarshalClip(payload string) (*domain.Clip, error) {
	var clip domain.Clip
	if err := json.Unmarshal([]byte(payload), &clip); err != nil {
		return nil, err
	}
	return &clip, nil
}
