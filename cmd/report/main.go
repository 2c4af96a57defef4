// Command report serves the reconciled ledger and ranking as a small
// read-only JSON API for the local results page.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/halukinal/yuzuncuyilfotograf-com/api"
	"github.com/halukinal/yuzuncuyilfotograf-com/config"
	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
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

	service := api.NewServer(cfg)
	if err := service.Start(); err != nil {
		logging.Log.Errorf("report server failed: %v", err)
		os.Exit(1)
	}
}
