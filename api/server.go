package api

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"

	"github.com/halukinal/yuzuncuyilfotograf-com/api/controllers"
	"github.com/halukinal/yuzuncuyilfotograf-com/api/transport"
	"github.com/halukinal/yuzuncuyilfotograf-com/config"
	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/halukinal/yuzuncuyilfotograf-com/storage"
)

type Server struct {
	config *config.Config
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

// Start wires storage and controllers and blocks serving the report API.
func (s *Server) Start() error {
	r := transport.NewRouter(gin.ReleaseMode)

	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}

	votesStorage := &storage.DynamoVoteStorage{
		Client:    dynamodb.NewFromConfig(cfg),
		TableName: s.config.TableNameVotes,
	}

	resultsController := controllers.NewResultsController(votesStorage, s.config.MappingPath())
	resultsController.RegisterRoutes(r)

	logging.Log.Infof("Starting report server on http://localhost:%d", s.config.Port)
	return r.Run(fmt.Sprintf(":%d", s.config.Port))
}
