// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build windows

package main

import (
	"os"
	"path/filepath"

	"github.com/versusvoid/rikaikun/internal/config"
)

// dictLocations returns the directories searched for compiled dictionaries:
// the configured output directory first, then %RIKAIKUN_DATA_DIR%, the data
// directory next to the executable and the local application data directory.
func dictLocations(cfg *config.Config) []string {
	loc := []string{cfg.OutputDir}

	if dataDir := os.Getenv("RIKAIKUN_DATA_DIR"); dataDir != "" {
		loc = append(loc, dataDir)
	}

	if execPath, err := os.Executable(); err == nil {
		loc = append(loc, filepath.Join(filepath.Dir(execPath), cfg.OutputDir))
	}

	if appData, err := os.UserCacheDir(); err == nil {
		loc = append(loc, filepath.Join(appData, "rikaikun"))
	}

	return loc
}
