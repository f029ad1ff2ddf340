// Package dynamodb loads the canonical equivalence table from a DynamoDB table.
package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"coursegraph/domain/core/entities"
	pkgerrors "coursegraph/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ScanAPI is the slice of the DynamoDB client the loader needs
type ScanAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// canonicalItem mirrors the canonical CSV columns plus the embedding row index
type canonicalItem struct {
	CanonicalID int64  `dynamodbav:"Canonical_ID"`
	Codes       string `dynamodbav:"Course_Codes"`
	Subjects    string `dynamodbav:"Subject"`
	Title       string `dynamodbav:"Title"`
	Description string `dynamodbav:"Course Description"`
	Campus      string `dynamodbav:"Campus"`
	Row         int    `dynamodbav:"Row"`
}

// CanonicalLoader scans the canonical table and restores embedding row order
type CanonicalLoader struct {
	client    ScanAPI
	tableName string
}

// NewCanonicalLoader creates a loader over tableName
func NewCanonicalLoader(client ScanAPI, tableName string) *CanonicalLoader {
	return &CanonicalLoader{client: client, tableName: tableName}
}

// LoadCanonical scans every item and returns them ordered by Row
func (l *CanonicalLoader) LoadCanonical(ctx context.Context) ([]*entities.CanonicalCourse, error) {
	proj := expression.NamesList(
		expression.Name("Canonical_ID"),
		expression.Name("Course_Codes"),
		expression.Name("Subject"),
		expression.Name("Title"),
		expression.Name("Course Description"),
		expression.Name("Campus"),
		expression.Name("Row"),
	)
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return nil, pkgerrors.NewDataLoadError(l.tableName, fmt.Errorf("build projection: %w", err))
	}

	input := &dynamodb.ScanInput{
		TableName:                aws.String(l.tableName),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	}

	var items []canonicalItem
	for {
		result, err := l.client.Scan(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewDataLoadError(l.tableName, fmt.Errorf("scan: %w", err))
		}

		var page []canonicalItem
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, pkgerrors.NewDataLoadError(l.tableName, fmt.Errorf("unmarshal: %w", err))
		}
		items = append(items, page...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Row < items[j].Row })

	table := make([]*entities.CanonicalCourse, 0, len(items))
	for _, item := range items {
		table = append(table, entities.NewCanonicalCourse(
			entities.CanonicalID(item.CanonicalID),
			item.Campus, item.Codes, item.Subjects, item.Title, item.Description,
			item.Row,
		))
	}
	return table, nil
}
