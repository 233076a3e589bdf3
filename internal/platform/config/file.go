// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// readFile loads a flat YAML mapping and converts its snake_case keys to the
// environment variable names used by [Config].
//
//	api_base_url: https://api.campus.test
//	session_backend: redis
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		if _, nested := value.(map[string]any); nested {
			return nil, fmt.Errorf("config: %s: key %q must be a scalar", path, key)
		}
		values[strings.ToUpper(key)] = fmt.Sprint(value)
	}
	return values, nil
}
