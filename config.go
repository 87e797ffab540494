package main

import (
	"errors"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BindAddress                   string `yaml:"bindAddress"`
	Port                          int32  `yaml:"port"`
	DatabasePath                  string `yaml:"databasePath"`
	LogPath                       string `yaml:"logPath"`
	ReportPath                    string `yaml:"reportPath"`
	FramePattern                  string `yaml:"framePattern"`
	Workers                       int    `yaml:"workers"`
	BlockSize                     int    `yaml:"blockSize"`
	HannWindow                    *bool  `yaml:"hannWindow"`
	DeleteInputFramesWhenFinished *bool  `yaml:"deleteInputFramesWhenFinished"`
	DeleteOutputIfAlreadyExist    *bool  `yaml:"deleteOutputIfAlreadyExist"`
}

// Verify config and set defaults
func verifyConfig(config *Config) error {
	if config == nil {
		return errors.New("cannot verify config, config is nil")
	}

	if config.BindAddress == "" {
		config.BindAddress = "127.0.0.1"
	}

	if config.Port == 0 {
		config.Port = 80
	}

	if config.DatabasePath == "" {
		return errors.New("missing database path in config")
	}

	if config.ReportPath == "" {
		config.ReportPath = "./report.txt"
	}

	if config.FramePattern == "" {
		config.FramePattern = "*.png"
	}

	if config.Workers == 0 {
		config.Workers = 1
	}

	if config.BlockSize == 0 {
		config.BlockSize = 16
	}

	if config.BlockSize < 2 {
		return errors.New("block size must be at least 2")
	}

	if config.HannWindow == nil {
		defaultVal := false
		config.HannWindow = &defaultVal
	}

	if config.DeleteInputFramesWhenFinished == nil {
		defaultVal := false
		config.DeleteInputFramesWhenFinished = &defaultVal
	}

	if config.DeleteOutputIfAlreadyExist == nil {
		defaultVal := false
		config.DeleteOutputIfAlreadyExist = &defaultVal
	}

	if config.LogPath == "" {
		config.LogPath = "./logs"
	}

	return nil
}

func GetConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	config := Config{}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, err
	}

	// Override with env variables if they are passed in
	err = envconfig.ProcessWithOptions("", &config, envconfig.Options{SplitWords: true})
	if err != nil {
		return Config{}, err
	}

	err = verifyConfig(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
