package dynamo

import (
	"context"
	"fmt"

	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Ensure PhotoRepo implements the repository interface at compile time
var _ domain.PhotoRepository = (*PhotoRepo)(nil)

// PhotoRepo is the DynamoDB implementation of domain.PhotoRepository.
// The table is keyed by photoId; PutItem replaces the whole item, which
// gives the last-write-wins overwrite semantics ingestion relies on.
type PhotoRepo struct {
	client *dynamodb.Client
	table  string
	logg   *logger.Logger
}

// NewPhotoRepo creates a DynamoDB-backed photo repository.
func NewPhotoRepo(awsCfg aws.Config, table string, logg *logger.Logger) *PhotoRepo {
	return &PhotoRepo{
		client: dynamodb.NewFromConfig(awsCfg),
		table:  table,
		logg:   logg,
	}
}

// photoItem mirrors the stored attribute layout. DynamoDB stores all numbers
// as arbitrary-precision decimals; attributevalue converts them back to the
// typed integer fields here on read.
type photoItem struct {
	PhotoID             string    `dynamodbav:"photoId"`
	Filename            string    `dynamodbav:"filename"`
	UploadDate          string    `dynamodbav:"uploadDate"`
	FileSize            int64     `dynamodbav:"fileSize,omitempty"`
	ContentType         string    `dynamodbav:"contentType,omitempty"`
	PhotoKey            string    `dynamodbav:"photoKey,omitempty"`
	ThumbnailKey        string    `dynamodbav:"thumbnailKey,omitempty"`
	Dimensions          *dimsItem `dynamodbav:"dimensions,omitempty"`
	ThumbnailDimensions *dimsItem `dynamodbav:"thumbnailDimensions,omitempty"`
	ProcessingStatus    string    `dynamodbav:"processingStatus"`
	ErrorMessage        string    `dynamodbav:"errorMessage,omitempty"`
	Tags                []string  `dynamodbav:"tags"`
}

type dimsItem struct {
	Width  int `dynamodbav:"width"`
	Height int `dynamodbav:"height"`
}

func toItem(r *domain.PhotoRecord) *photoItem {
	item := &photoItem{
		PhotoID:          r.PhotoID,
		Filename:         r.Filename,
		UploadDate:       r.UploadDate,
		FileSize:         r.FileSize,
		ContentType:      r.ContentType,
		PhotoKey:         r.PhotoKey,
		ThumbnailKey:     r.ThumbnailKey,
		ProcessingStatus: string(r.ProcessingStatus),
		ErrorMessage:     r.ErrorMessage,
		Tags:             r.Tags,
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if r.Dimensions != nil {
		item.Dimensions = &dimsItem{Width: r.Dimensions.Width, Height: r.Dimensions.Height}
	}
	if r.ThumbnailDimensions != nil {
		item.ThumbnailDimensions = &dimsItem{Width: r.ThumbnailDimensions.Width, Height: r.ThumbnailDimensions.Height}
	}
	return item
}

func fromItem(item *photoItem) *domain.PhotoRecord {
	r := &domain.PhotoRecord{
		PhotoID:          item.PhotoID,
		Filename:         item.Filename,
		UploadDate:       item.UploadDate,
		FileSize:         item.FileSize,
		ContentType:      item.ContentType,
		PhotoKey:         item.PhotoKey,
		ThumbnailKey:     item.ThumbnailKey,
		ProcessingStatus: domain.ProcessingStatus(item.ProcessingStatus),
		ErrorMessage:     item.ErrorMessage,
		Tags:             item.Tags,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if item.Dimensions != nil {
		r.Dimensions = &domain.Dimensions{Width: item.Dimensions.Width, Height: item.Dimensions.Height}
	}
	if item.ThumbnailDimensions != nil {
		r.ThumbnailDimensions = &domain.Dimensions{Width: item.ThumbnailDimensions.Width, Height: item.ThumbnailDimensions.Height}
	}
	return r
}

// Put writes the record, replacing any existing item with the same photoId.
func (r *PhotoRepo) Put(ctx context.Context, record *domain.PhotoRecord) error {
	item, err := attributevalue.MarshalMap(toItem(record))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		r.logg.Error("failed to put photo record", "error", err, "photo_id", record.PhotoID)
		return fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	return nil
}

// Get fetches a record by photo ID.
func (r *PhotoRepo) Get(ctx context.Context, photoID string) (*domain.PhotoRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"photoId": &types.AttributeValueMemberS{Value: photoID},
		},
	})
	if err != nil {
		r.logg.Error("failed to get photo record", "error", err, "photo_id", photoID)
		return nil, fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrPhotoNotFound
	}

	var item photoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	return fromItem(&item), nil
}

// Delete removes a record by photo ID.
func (r *PhotoRepo) Delete(ctx context.Context, photoID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"photoId": &types.AttributeValueMemberS{Value: photoID},
		},
	})
	if err != nil {
		r.logg.Error("failed to delete photo record", "error", err, "photo_id", photoID)
		return fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	return nil
}

// ScanAll returns every record in the table, following LastEvaluatedKey
// until the scan is exhausted so large collections are never truncated.
func (r *PhotoRepo) ScanAll(ctx context.Context) ([]*domain.PhotoRecord, error) {
	var records []*domain.PhotoRecord
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			r.logg.Error("failed to scan photo records", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
		}

		var items []photoItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
		}
		for i := range items {
			records = append(records, fromItem(&items[i]))
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	r.logg.Debug("scanned photo records", "count", len(records))
	return records, nil
}
