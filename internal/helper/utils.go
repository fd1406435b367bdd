package helper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GenerateUUID creates a random unique UUID string
func GenerateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %v", err)
	}
	return id.String(), nil
}

// pretty print
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Msg("Error pretty printing")
	}
	fmt.Println(string(b))
}

// CreateFolder creates path and any missing parents
func CreateFolder(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", path, err)
	}
	return nil
}

// IsFileInUse probes whether another process holds the file by opening it
// for append. Any failure counts as in use. The probe creates the file when
// it does not exist yet.
func IsFileInUse(path string) bool {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return true
	}
	f.Close()
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ResolveUniquePath returns a file name in dir that neither exists nor is in
// use: base+ext, then base_1+ext, base_2+ext and so on. dir is created when
// missing. The check is not atomic.
func ResolveUniquePath(dir, base, ext string) (string, error) {
	if err := CreateFolder(dir); err != nil {
		return "", err
	}

	name := base + ext
	for counter := 1; fileExists(filepath.Join(dir, name)) || IsFileInUse(filepath.Join(dir, name)); counter++ {
		name = fmt.Sprintf("%s_%d%s", base, counter, ext)
	}
	log.Debug().Str("dir", dir).Str("file", name).Msg("Resolved output file name")
	return name, nil
}

// DefaultBaseName derives the deck base name from the process name.
func DefaultBaseName(prefix, processName string) string {
	return prefix + strings.ReplaceAll(processName, " ", "_")
}

// SplitFileName splits name into base and extension; an empty extension
// falls back to defaultExt.
func SplitFileName(name, defaultExt string) (string, string) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if strings.Trim(base, ".") == "" {
		// dot files such as ".pptx" have no extension
		base, ext = name, ""
	}
	if ext == "" {
		ext = defaultExt
	}
	return base, ext
}
