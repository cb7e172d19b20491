package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/abcplay/config"
	"github.com/jsphweid/abcplay/model"
	"github.com/jsphweid/abcplay/util"
)

// BatchGetItem accepts at most 100 keys per call
const maxBatchKeys = 100

// Item is one catalog row. PK is the path of the tune source.
type Item struct {
	PK            string   `dynamodbav:"PK"`
	ID            string   `dynamodbav:"ID"`
	Title         string   `dynamodbav:"Title"`
	Composer      string   `dynamodbav:"Composer"`
	Key           string   `dynamodbav:"Key"`
	Meter         string   `dynamodbav:"Meter"`
	DefaultLength string   `dynamodbav:"DefaultLength"`
	Tempo         int      `dynamodbav:"Tempo"`
	Voices        []string `dynamodbav:"Voices,omitempty"`
}

func NewItem(path string, md model.PieceMetadata) Item {
	return Item{
		PK:            path,
		ID:            md.ID,
		Title:         md.Title,
		Composer:      md.Composer,
		Key:           md.Key,
		Meter:         md.Meter,
		DefaultLength: md.DefaultLength,
		Tempo:         md.Tempo,
		Voices:        md.Voices,
	}
}

func (i Item) Metadata() model.PieceMetadata {
	return model.PieceMetadata{
		ID:            i.ID,
		Title:         i.Title,
		Composer:      i.Composer,
		Key:           i.Key,
		Meter:         i.Meter,
		DefaultLength: i.DefaultLength,
		Tempo:         i.Tempo,
		Voices:        i.Voices,
	}
}

// Catalog stores the header metadata of rendered tunes
type Catalog struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewCatalog(cfg *config.Config) (*Catalog, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(cfg.DynamoRegion),
		Endpoint: aws.String(cfg.DynamoEndpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("creating dynamodb session: %w", err)
	}
	return &Catalog{client: dynamodb.New(sess), table: cfg.DynamoTable}, nil
}

func NewCatalogWithClient(client dynamodbiface.DynamoDBAPI, table string) *Catalog {
	return &Catalog{client: client, table: table}
}

func (c *Catalog) PutPiece(ctx context.Context, path string, md model.PieceMetadata) error {
	av, err := dynamodbattribute.MarshalMap(NewItem(path, md))
	if err != nil {
		return fmt.Errorf("marshaling catalog item: %w", err)
	}
	_, err = c.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("storing %s: %w", path, err)
	}
	slog.Debug("cataloged tune", "path", path, "title", md.Title)
	return nil
}

// GetPieces fetches the metadata stored for paths. Paths never cataloged
// are absent from the result.
func (c *Catalog) GetPieces(ctx context.Context, paths []string) (map[string]model.PieceMetadata, error) {
	res := make(map[string]model.PieceMetadata)

	for start := 0; start < len(paths); start += maxBatchKeys {
		end := util.Min(start+maxBatchKeys, len(paths))

		var keys []map[string]*dynamodb.AttributeValue
		for _, path := range paths[start:end] {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(path)},
			})
		}
		request := map[string]*dynamodb.KeysAndAttributes{c.table: {Keys: keys}}

		for len(request) > 0 {
			out, err := c.client.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, fmt.Errorf("fetching catalog: %w", err)
			}
			for _, v := range out.Responses[c.table] {
				var item Item
				if err := dynamodbattribute.UnmarshalMap(v, &item); err != nil {
					return nil, fmt.Errorf("unmarshaling catalog item: %w", err)
				}
				res[item.PK] = item.Metadata()
			}
			request = out.UnprocessedKeys
		}
	}

	return res, nil
}
