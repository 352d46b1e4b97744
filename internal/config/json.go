package config

import (
	"encoding/json"
	"os"

	"uservault/internal/flagx"
	"uservault/internal/storage"
)

// jsonConfig is a DTO used only for JSON unmarshalling; parsed values are
// copied into the runtime Config.
type jsonConfig struct {
	Backend    string `json:"backend"`
	SQLitePath string `json:"sqlite_path"`
	BoltPath   string `json:"bolt_path"`
	Verbose    bool   `json:"verbose"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. When no file is given, nothing changes. Read, parse and
// unknown-backend errors panic; the file is operator input, not user input.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Backend != "" {
		t, err := storage.ParseBackendType(jc.Backend)
		if err != nil {
			panic(err)
		}
		cfg.Backend = t
	}
	if jc.SQLitePath != "" {
		cfg.SQLitePath = jc.SQLitePath
	}
	if jc.BoltPath != "" {
		cfg.BoltPath = jc.BoltPath
	}
	if jc.Verbose {
		cfg.Verbose = true
	}
}
