// Command anonymize scans the contest archive, copies every submission
// into the jury pool under an anonymous name and writes the owner-mapping
// table next to it.
//
// Re-running regenerates IDs from scratch: any votes already cast against
// the previous pool become unresolvable.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/halukinal/yuzuncuyilfotograf-com/anonymizer"
	"github.com/halukinal/yuzuncuyilfotograf-com/config"
	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/halukinal/yuzuncuyilfotograf-com/mapping"
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

	logging.Log.Infof("Contest root: %s", cfg.RootDir)

	a := anonymizer.New(cfg.RootDir, cfg.PoolDirName)
	entries, err := a.Run()
	if err != nil {
		logging.Log.Errorf("anonymizer run failed: %v", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		logging.Log.Warn("no valid photos found, mapping table not written")
		return
	}

	if err := mapping.Write(cfg.MappingPath(), entries); err != nil {
		logging.Log.Errorf("failed to write mapping table: %v", err)
		os.Exit(1)
	}

	logging.Log.Infof("Processed %d photos, mapping table saved to %s", len(entries), cfg.MappingPath())
}
