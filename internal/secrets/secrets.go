// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the Gemini API key. The key may come from a
// command-line flag, the environment (optionally seeded from a .env file),
// or a directory of plain-text secret files where each filename is a key
// name and the trimmed contents are the value.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// GeminiKeyFile is the secret file name holding the Gemini API key.
const GeminiKeyFile = "gemini-api-key"

// EnvVars lists the environment variables checked for the API key, in order.
var EnvVars = []string{"SCIVECTOR_API_KEY", "GEMINI_API_KEY", "API_KEY"}

// ErrMissingAPIKey is returned when no source provides an API key.
var ErrMissingAPIKey = errors.New("no Gemini API key configured")

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped; with no arguments ".env" is tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Source names where a resolved key came from.
type Source string

const (
	SourceFlag Source = "flag"
	SourceEnv  Source = "env"
	SourceFile Source = "file"
)

// Resolution is the outcome of ResolveAPIKey.
type Resolution struct {
	Key    string
	Source Source
	// Name is the env var or secret file name for SourceEnv and SourceFile.
	Name string
}

// ResolveAPIKey picks the API key from, in order: flagValue, the EnvVars
// (looked up with lookupEnv, os.LookupEnv when nil), then the GeminiKeyFile
// entry of fileSecrets. It returns ErrMissingAPIKey when every source is
// empty.
func ResolveAPIKey(flagValue string, lookupEnv func(string) (string, bool), fileSecrets map[string]string) (Resolution, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return Resolution{Key: v, Source: SourceFlag}, nil
	}

	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	for _, name := range EnvVars {
		if v, ok := lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return Resolution{Key: strings.TrimSpace(v), Source: SourceEnv, Name: name}, nil
		}
	}

	if v := fileSecrets[GeminiKeyFile]; v != "" {
		return Resolution{Key: v, Source: SourceFile, Name: GeminiKeyFile}, nil
	}

	return Resolution{}, ErrMissingAPIKey
}
