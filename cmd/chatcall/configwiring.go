// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/davetashner/chatcall/internal/config"
	"github.com/davetashner/chatcall/internal/llm"
)

// configLayers holds each configuration source before merging.
type configLayers struct {
	defaults *config.Config
	global   *config.Config
	repo     *config.Config
}

// merged applies the layers in precedence order: defaults, global, repo.
func (l configLayers) merged() *config.Config {
	return config.Merge(config.Merge(l.defaults, l.global), l.repo)
}

// loadLayers reads the global file and either the --config file or the
// repo file in the working directory.
func loadLayers() (configLayers, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return configLayers{}, fmt.Errorf("loading global config: %w", err)
	}
	var repo *config.Config
	if configPath != "" {
		repo, err = config.LoadFile(configPath)
	} else {
		repo, err = config.Load(".")
	}
	if err != nil {
		return configLayers{}, fmt.Errorf("loading config: %w", err)
	}
	return configLayers{defaults: config.Defaults(), global: global, repo: repo}, nil
}

// loadConfig returns the validated effective configuration.
func loadConfig() (*config.Config, error) {
	layers, err := loadLayers()
	if err != nil {
		return nil, err
	}
	cfg := layers.merged()
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// repoConfigPath returns the file the repo layer was read from, or "".
func repoConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.Path(".")
}

// newDispatcher resolves endpoints from cfg and the environment.
// Tests replace it to inject mock providers.
var newDispatcher = func(cfg *config.Config) (*llm.Dispatcher, error) {
	endpoints, err := config.Endpoints(cfg, os.Getenv)
	if err != nil {
		return nil, err
	}
	return llm.NewDispatcher(endpoints), nil
}
