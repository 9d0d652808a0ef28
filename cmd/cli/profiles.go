package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"titanic/domain/passenger"

	"gopkg.in/yaml.v3"
)

// DefaultProfileFile is looked up in the current directory, then the home directory
const DefaultProfileFile = ".titanic.yaml"

// ErrProfileFileNotFound is returned when an explicitly named profile file does not exist
var ErrProfileFileNotFound = stderrors.New("profile file not found")

// ProfileFile holds a default backend and named passengers for the CLI
type ProfileFile struct {
	Backend    string                      `yaml:"backend"`
	Passengers map[string]passenger.Fields `yaml:"passengers"`
}

// LoadProfileFile reads a YAML profile file
func LoadProfileFile(path string) (*ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProfileFileNotFound
		}
		return nil, err
	}

	var pf ProfileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if pf.Passengers == nil {
		pf.Passengers = make(map[string]passenger.Fields)
	}
	return &pf, nil
}

// FindProfileFile returns explicit when it exists, else the default file from the current
// or home directory, else ""
func FindProfileFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, DefaultProfileFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadProfiles loads the profile file; a missing default file yields an empty one
func loadProfiles(explicit string) (*ProfileFile, error) {
	path := FindProfileFile(explicit)
	if path == "" {
		if explicit != "" {
			return nil, fmt.Errorf("%w: %s", ErrProfileFileNotFound, explicit)
		}
		return &ProfileFile{Passengers: map[string]passenger.Fields{}}, nil
	}
	return LoadProfileFile(path)
}

// Passenger resolves a --p1/--p2 value: key=value pairs, or the name of a stored passenger
func (pf *ProfileFile) Passenger(value string) (passenger.Fields, error) {
	if strings.Contains(value, "=") {
		return passenger.ParseKeyValues(value)
	}

	name := strings.TrimSpace(value)
	if f, ok := pf.Passengers[name]; ok {
		return f, nil
	}

	known := make([]string, 0, len(pf.Passengers))
	for n := range pf.Passengers {
		known = append(known, n)
	}
	sort.Strings(known)
	if len(known) == 0 {
		return passenger.Fields{}, fmt.Errorf("unknown passenger %q and no profiles are defined", name)
	}
	return passenger.Fields{}, fmt.Errorf("unknown passenger %q (known: %s)", name, strings.Join(known, ", "))
}
