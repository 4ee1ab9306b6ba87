package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/property-checklist/internal/model"
)

// snapshot is a listing file: the scraped listing plus optional premium
// data.
type snapshot struct {
	Listing model.Listing      `json:"listing" yaml:"listing"`
	Premium *model.PremiumData `json:"premium,omitempty" yaml:"premium,omitempty"`
}

// salesFile holds the inputs of the insight command.
type salesFile struct {
	AskingPrice string                   `json:"asking_price" yaml:"asking_price"`
	History     []model.SaleHistoryEntry `json:"history" yaml:"history"`
}

// readInput decodes a JSON or YAML file into v, chosen by extension.
func readInput(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return eris.Wrapf(err, "parse yaml %s", path)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return eris.Wrapf(err, "parse json %s", path)
		}
	}
	return nil
}

func loadSnapshot(path string) (snapshot, error) {
	var s snapshot
	if err := readInput(path, &s); err != nil {
		return s, err
	}
	return s, nil
}
