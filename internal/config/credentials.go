package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Makepad-fr/skycount/internal/store/jsonstore"
)

const credFileName = "credentials.json"

// Environment variables checked for the API key, in order.
var keyEnvVars = []string{"SKYCOUNT_WEATHER_KEY", "WEATHER_API_KEY"}

// KeyInfo is the resolved weather API key and where it came from.
type KeyInfo struct {
	Key       string    `json:"key"`
	Source    string    `json:"source"`     // "env" | "file"
	EnvVar    string    `json:"-"`          // set when Source is "env"
	CreatedAt time.Time `json:"created_at"` // when we saved to file
}

func credFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

// GetKey resolves the API key: environment first, then the credentials file.
// It returns nil, nil when no key is configured anywhere.
func GetKey() (*KeyInfo, error) {
	// 1) env override
	for _, name := range keyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return &KeyInfo{Key: stripBearer(v), Source: "env", EnvVar: name}, nil
		}
	}

	// 2) file
	p, err := credFilePath()
	if err != nil {
		return nil, err
	}
	var ki KeyInfo
	if err := jsonstore.Load(p, &ki); err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			return nil, nil // not configured
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	ki.Key = stripBearer(ki.Key)
	if ki.Key == "" {
		return nil, nil
	}
	ki.Source = "file"
	return &ki, nil
}

// SetKey stores key in ~/.skycount/credentials.json with owner-only perms.
func SetKey(key string) error {
	key = stripBearer(strings.TrimSpace(key))
	if key == "" {
		return fmt.Errorf("empty key")
	}
	p, err := credFilePath()
	if err != nil {
		return err
	}
	ki := KeyInfo{Key: key, Source: "file", CreatedAt: time.Now()}
	if err := jsonstore.Save(p, ki, 0o600); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// DeleteKey removes the credentials file if present.
func DeleteKey() error {
	p, err := credFilePath()
	if err != nil {
		return err
	}
	return jsonstore.Remove(p)
}

// APIKey is GetKey reduced to the key string; "" when none is set.
func APIKey() string {
	ki, err := GetKey()
	if err != nil || ki == nil {
		return ""
	}
	return ki.Key
}

func stripBearer(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
