package appinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata captures static identifiers for the gateway, loaded from the
// gateway.yaml manifest shipped next to the binary.
type Metadata struct {
	Name        string
	Description string
	Version     string
}

// Load reads the manifest from the first location it is found in: next to
// the binary, the working directory, or the source tree root.
func Load() (Metadata, error) {
	data, err := loadManifest()
	if err != nil {
		return Metadata{}, err
	}
	return parseManifest(data)
}

func loadManifest() ([]byte, error) {
	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, wd)
	}
	if _, file, _, ok := runtime.Caller(0); ok {
		srcRoot := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
		candidates = append(candidates, srcRoot)
	}

	seen := make(map[string]struct{})
	for _, base := range candidates {
		base = filepath.Clean(base)
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}

		candidate := filepath.Join(base, "gateway.yaml")
		if data, err := os.ReadFile(candidate); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("appinfo: gateway.yaml not found next to binary or source tree")
}

type manifestDocument struct {
	Metadata struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Version     string `yaml:"version"`
	} `yaml:"metadata"`
}

func parseManifest(data []byte) (Metadata, error) {
	var doc manifestDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Metadata{}, fmt.Errorf("appinfo: decode manifest: %w", err)
	}

	meta := Metadata{
		Name:        strings.TrimSpace(doc.Metadata.Name),
		Description: strings.TrimSpace(doc.Metadata.Description),
		Version:     strings.TrimSpace(doc.Metadata.Version),
	}

	if meta.Version == "" {
		return Metadata{}, fmt.Errorf("appinfo: metadata.version missing in manifest")
	}
	if meta.Name == "" {
		return Metadata{}, fmt.Errorf("appinfo: metadata.name missing in manifest")
	}
	if meta.Description == "" {
		meta.Description = meta.Name
	}

	return meta, nil
}
