package config

import (
	"os"

	"crew-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the crew server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		DefaultMission int `yaml:"defaultMission" envconfig:"default_mission"`
		MinPlayers     int `yaml:"minPlayers" envconfig:"min_players"`
		MaxPlayers     int `yaml:"maxPlayers" envconfig:"max_players"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the defaults plus any CREW_*
// environment variables are used instead.
func Load() error {
	config = defaultConfig()

	configFile := util.Getenv("CREW_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("crew", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}

func defaultConfig() Config {
	var c Config
	c.Addr = ":5000"
	c.Game.DefaultMission = 1
	c.Game.MinPlayers = 2
	c.Game.MaxPlayers = 5
	return c
}
