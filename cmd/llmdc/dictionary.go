package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"go.llmdc.dev/compiler/llmd"
)

// dictionaryFile is the shape of the optional --dictionary YAML file: it
// overrides the c2 compression pass's word lists and substitution tables
// without requiring a full --config file.
type dictionaryFile struct {
	Stopwords    []string          `yaml:"stopwords"`
	ProtectWords []string          `yaml:"protect_words"`
	PhraseMap    map[string]string `yaml:"phrase_map"`
	Units        map[string]string `yaml:"units"`
}

// loadDictionary reads and decodes a dictionary YAML file at path.
func loadDictionary(path string) (*dictionaryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", llmd.ErrReadInput, path, err)
	}

	var d dictionaryFile

	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", llmd.ErrReadInput, path, err)
	}

	return &d, nil
}

// applyDictionary overlays any non-empty fields of d onto cfg, leaving
// cfg's existing defaults in place for fields the dictionary omits.
func applyDictionary(cfg *llmd.Config, d *dictionaryFile) {
	if len(d.Stopwords) > 0 {
		cfg.Stopwords = d.Stopwords
	}

	if len(d.ProtectWords) > 0 {
		cfg.ProtectWords = d.ProtectWords
	}

	if len(d.PhraseMap) > 0 {
		cfg.PhraseMap = d.PhraseMap
	}

	if len(d.Units) > 0 {
		cfg.Units = d.Units
	}
}
