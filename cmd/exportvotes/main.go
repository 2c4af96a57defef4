// Command exportvotes drains the remote votes table, joins each vote
// against the owner-mapping table and writes the ledger plus the ranked
// summary as one workbook.
package main

import (
	"context"
	"errors"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/halukinal/yuzuncuyilfotograf-com/config"
	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/halukinal/yuzuncuyilfotograf-com/mapping"
	"github.com/halukinal/yuzuncuyilfotograf-com/reconcile"
	"github.com/halukinal/yuzuncuyilfotograf-com/report"
	"github.com/halukinal/yuzuncuyilfotograf-com/storage"
)

func main() {
	logging.BoostrapLogger()

	if err := godotenv.Load(); err != nil {
		logging.Log.Debugf("no .env file loaded: %v", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Warnf("no config file read, using defaults: %v", err)
	}

	cfg := config.Read()
	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		os.Exit(1)
	}

	votesStorage := &storage.DynamoVoteStorage{
		Client:    dynamodb.NewFromConfig(awsCfg),
		TableName: cfg.TableNameVotes,
	}

	logging.Log.Info("Fetching votes from the store...")
	votes, err := votesStorage.GetAll(ctx)
	if err != nil {
		logging.Log.Errorf("failed to fetch votes: %v", err)
		os.Exit(1)
	}

	owners, err := mapping.Load(cfg.MappingPath())
	if err != nil {
		logging.Log.Warnf("owner mapping unavailable, owners will be %q: %v", reconcile.UnknownOwner, err)
		owners = map[string]string{}
	}

	ledger, summary, err := reconcile.Reconcile(votes, owners)
	if err != nil {
		if errors.Is(err, reconcile.ErrNoVotes) {
			logging.Log.Warn("no votes found, nothing to export")
			return
		}
		logging.Log.Errorf("reconcile failed: %v", err)
		os.Exit(1)
	}

	written, err := report.Write(cfg.OutputFile, ledger, summary)
	if err != nil {
		logging.Log.Errorf("failed to write report: %v", err)
		os.Exit(1)
	}

	logging.Log.Infof("Report saved to %s (%d votes, %d photos)", written, len(ledger), len(summary))
}
