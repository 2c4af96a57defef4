package storage

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
)

// Runs against localstack; skipped unless LOCALSTACK_ENDPOINT is set.
func setupVoteStorage(t *testing.T) *DynamoVoteStorage {
	t.Helper()
	logging.Log = logrus.New()

	endpoint := os.Getenv("LOCALSTACK_ENDPOINT")
	if endpoint == "" {
		t.Skip("LOCALSTACK_ENDPOINT not set")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
			}),
		),
	)
	require.NoError(t, err)

	db := dynamodb.NewFromConfig(cfg)
	s := &DynamoVoteStorage{Client: db, TableName: "Votes"}

	t.Cleanup(func() {
		cleanupVotes(t, db)
	})
	return s
}

func cleanupVotes(t *testing.T, client *dynamodb.Client) {
	t.Helper()

	out, err := client.Scan(context.TODO(), &dynamodb.ScanInput{
		TableName: aws.String("Votes"),
	})
	if err != nil {
		t.Fatalf("cleanup failed to scan Votes: %v", err)
	}

	for _, item := range out.Items {
		_, err := client.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
			TableName: aws.String("Votes"),
			Key:       map[string]types.AttributeValue{"PK": item["PK"]},
		})
		if err != nil {
			t.Fatalf("cleanup failed to delete item: %v", err)
		}
	}
}

func putVote(t *testing.T, s *DynamoVoteStorage, pk string, vote *Vote) {
	t.Helper()

	item, err := attributevalue.MarshalMap(vote)
	require.NoError(t, err)
	item["PK"] = &types.AttributeValueMemberS{Value: pk}

	_, err = s.Client.PutItem(context.TODO(), &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	require.NoError(t, err)
}

func TestGetAll(t *testing.T) {
	s := setupVoteStorage(t)

	t.Run("Empty table", func(t *testing.T) {
		votes, err := s.GetAll(context.TODO())
		require.NoError(t, err)
		assert.Empty(t, votes)
	})

	t.Run("Mixed score types survive the scan", func(t *testing.T) {
		putVote(t, s, "v1", &Vote{
			PhotoID:   "YARISMA_ID_001.jpg",
			Score:     5,
			JuryEmail: "j1@example.com",
			Timestamp: "2026-03-01 10:00:00",
		})
		putVote(t, s, "v2", &Vote{
			PhotoID:   "YARISMA_ID_001.jpg",
			Score:     "x",
			JuryEmail: "j2@example.com",
			Timestamp: "2026-03-01 10:05:00",
		})

		votes, err := s.GetAll(context.TODO())
		require.NoError(t, err)
		require.Len(t, votes, 2)

		byJuror := map[string]*Vote{}
		for _, v := range votes {
			byJuror[v.JuryEmail] = v
		}
		assert.Equal(t, float64(5), byJuror["j1@example.com"].Score)
		assert.Equal(t, "x", byJuror["j2@example.com"].Score)
	})

	t.Run("Drains more votes than one page", func(t *testing.T) {
		cleanupVotes(t, s.Client)
		for i := 0; i < 150; i++ {
			putVote(t, s, fmt.Sprintf("bulk-%03d", i), &Vote{
				PhotoID:   "YARISMA_ID_002.png",
				Score:     1,
				JuryEmail: fmt.Sprintf("j%03d@example.com", i),
				Timestamp: "2026-03-01 11:00:00",
			})
		}

		votes, err := s.GetAll(context.TODO())
		require.NoError(t, err)
		assert.Len(t, votes, 150)
	})
}
