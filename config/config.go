package config

import (
	"path/filepath"
	"sync"

	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/spf13/viper"
)

type Config struct {
	ContestConfig
	StorageConfig
	ReportConfig
	ServerConfig
}

type ContestConfig struct {
	RootDir         string
	PoolDirName     string
	MappingFileName string
}

type StorageConfig struct {
	TableNameVotes string
}

type ReportConfig struct {
	OutputFile string
}

type ServerConfig struct {
	Port int
}

var settingsOnce sync.Once

func Read() *Config {
	conf := &Config{
		ContestConfig: ContestConfig{
			RootDir:         getStringOrDefault("contest.RootDir", "."),
			PoolDirName:     getStringOrDefault("contest.PoolDirName", "_JURI_OYLAMA_HAVUZU"),
			MappingFileName: getStringOrDefault("contest.MappingFileName", "KATILIMCI_ESLESME_LISTESI.xlsx"),
		},
		StorageConfig: StorageConfig{
			TableNameVotes: getStringOrDefault("storage.TableNameVotes", "Votes"),
		},
		ReportConfig: ReportConfig{
			OutputFile: getStringOrDefault("report.OutputFile", "oylama_sonuclari.xlsx"),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 8080),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

// MappingPath is where the anonymizer publishes the owner-mapping table
// and where the reconciler expects to find it.
func (c *Config) MappingPath() string {
	return filepath.Join(c.RootDir, c.MappingFileName)
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
