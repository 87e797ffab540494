package main

import "testing"

func TestVerifyConfig_Defaults(t *testing.T) {
	config := Config{DatabasePath: "./test.db"}
	if err := verifyConfig(&config); err != nil {
		t.Fatal(err)
	}

	if config.BindAddress != "127.0.0.1" {
		t.Errorf("BindAddress = %q", config.BindAddress)
	}
	if config.Port != 80 {
		t.Errorf("Port = %d", config.Port)
	}
	if config.Workers != 1 {
		t.Errorf("Workers = %d", config.Workers)
	}
	if config.BlockSize != 16 {
		t.Errorf("BlockSize = %d", config.BlockSize)
	}
	if config.FramePattern != "*.png" {
		t.Errorf("FramePattern = %q", config.FramePattern)
	}
	if *config.HannWindow {
		t.Error("HannWindow should default to false")
	}
}

func TestVerifyConfig_RequiresDatabasePath(t *testing.T) {
	config := Config{}
	if err := verifyConfig(&config); err == nil {
		t.Error("expected an error for a missing database path")
	}
}

func TestVerifyConfig_RejectsTinyBlockSize(t *testing.T) {
	config := Config{DatabasePath: "./test.db", BlockSize: 1}
	if err := verifyConfig(&config); err == nil {
		t.Error("expected an error for block size 1")
	}
}
