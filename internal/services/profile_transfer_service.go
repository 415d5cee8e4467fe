package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	filepathx "github.com/yargevad/filepathx"
	"gopkg.in/yaml.v3"

	"storyloom/internal/models"
	"storyloom/internal/utils"
)

// profileDocument is the on-disk shape of an exported collection:
// [[profiles]] tables in TOML, a profiles list in YAML.
type profileDocument[T any] struct {
	Profiles []T `toml:"profiles" yaml:"profiles"`
}

// ProfileTransferService moves personas and personal profiles in and out
// of TOML/YAML files. Imports go through the regular Save path so the
// default invariants hold afterwards.
type ProfileTransferService struct {
	personas  PersonaService
	personals PersonalService
}

func NewProfileTransferService(personas PersonaService, personals PersonalService) *ProfileTransferService {
	return &ProfileTransferService{personas: personas, personals: personals}
}

func (s *ProfileTransferService) ExportPersonas(path string) (int, error) {
	list, err := s.personas.GetPersonas()
	if err != nil {
		return 0, err
	}
	return len(list), writeProfiles(path, list)
}

func (s *ProfileTransferService) ExportPersonals(path string) (int, error) {
	list, err := s.personals.GetPersonals()
	if err != nil {
		return 0, err
	}
	return len(list), writeProfiles(path, list)
}

// ImportPersonas imports a single file, or every profile file below a directory.
func (s *ProfileTransferService) ImportPersonas(path string) (int, error) {
	return importProfiles(path, func(p models.Persona) error {
		_, err := s.personas.SavePersona(p)
		return err
	})
}

func (s *ProfileTransferService) ImportPersonals(path string) (int, error) {
	return importProfiles(path, func(p models.Personal) error {
		_, err := s.personals.SavePersonal(p)
		return err
	})
}

func importProfiles[T any](path string, save func(T) error) (int, error) {
	files, err := profileFiles(path)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, file := range files {
		items, err := readProfiles[T](file)
		if err != nil {
			return count, err
		}
		for _, item := range items {
			if err := save(item); err != nil {
				return count, fmt.Errorf("import %s: %w", file, err)
			}
			count++
		}
	}
	return count, nil
}

// profileFiles expands a directory into its TOML/YAML files, recursively.
func profileFiles(path string) ([]string, error) {
	if !utils.DirectoryExists(path) {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("import path: %w", err)
		}
		return []string{path}, nil
	}

	var files []string
	for _, ext := range []string{"toml", "yaml", "yml"} {
		matches, err := filepathx.Glob(filepath.Join(path, "**", "*."+ext))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", path, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func readProfiles[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc profileDocument[T]
	switch utils.FileExt(path) {
	case "toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported profile file %s", path)
	}
	return doc.Profiles, nil
}

func writeProfiles[T any](path string, items []T) error {
	doc := profileDocument[T]{Profiles: items}

	var buf bytes.Buffer
	switch utils.FileExt(path) {
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return errors.New("export path must end in .toml, .yaml or .yml")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
