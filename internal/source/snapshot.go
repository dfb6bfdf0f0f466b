package source

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/grimoire/internal/card"
)

//go:embed snapshot/cards.json
var bundledSnapshot []byte

// BundledName is the name reported for the snapshot compiled into the binary
const BundledName = "bundled snapshot"

// Snapshot reads cards from a JSON or YAML file
type Snapshot struct {
	path   string
	logger *zap.Logger
}

// NewSnapshot creates a snapshot source. An empty path selects the bundled snapshot.
func NewSnapshot(path string, logger *zap.Logger) *Snapshot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snapshot{path: path, logger: logger}
}

// Name returns the snapshot path
func (s *Snapshot) Name() string {
	if s.path == "" {
		return BundledName
	}
	return s.path
}

// Path returns the snapshot file path, empty for the bundled snapshot
func (s *Snapshot) Path() string {
	return s.path
}

// Load reads and decodes the snapshot
func (s *Snapshot) Load(ctx context.Context) ([]card.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return DecodeJSON(bundledSnapshot)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	s.logger.Debug("loaded snapshot", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return Decode(s.path, data)
}

// Decode decodes snapshot data, picking the format from the file extension
func Decode(path string, data []byte) ([]card.Card, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".json", "":
		return DecodeJSON(data)
	}
	return nil, fmt.Errorf("unsupported snapshot format: %s", filepath.Ext(path))
}

// DecodeJSON accepts either a bare array of cards or a {"cards": [...]} envelope
func DecodeJSON(data []byte) ([]card.Card, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cards []card.Card
		if err := json.Unmarshal(trimmed, &cards); err != nil {
			return nil, fmt.Errorf("decoding snapshot: %w", err)
		}
		return cards, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, fmt.Errorf("snapshot is not valid JSON")
	}
	return decodeEnvelope(trimmed)
}

type yamlSnapshot struct {
	Cards []card.Card `yaml:"cards"`
}

// DecodeYAML accepts either a sequence of cards or a mapping with a cards key
func DecodeYAML(data []byte) ([]card.Card, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if len(node.Content) == 0 {
		return []card.Card{}, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var cards []card.Card
		if err := root.Decode(&cards); err != nil {
			return nil, fmt.Errorf("decoding snapshot: %w", err)
		}
		return cards, nil
	}

	var doc yamlSnapshot
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if doc.Cards == nil {
		return nil, fmt.Errorf("snapshot has no cards field")
	}
	return doc.Cards, nil
}

// yamlCard keeps nil and empty lists apart when encoding, which plain
// slices cannot do in YAML
type yamlCard struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Text     string    `yaml:"text,omitempty"`
	Types    *[]string `yaml:"types,omitempty"`
	Colors   *[]string `yaml:"colors,omitempty"`
	SetName  string    `yaml:"setName"`
	ImageURL string    `yaml:"imageUrl,omitempty"`
}

func toYAML(cards []card.Card) map[string][]yamlCard {
	out := make([]yamlCard, 0, len(cards))
	for _, c := range cards {
		yc := yamlCard{ID: c.ID, Name: c.Name, Text: c.Text, SetName: c.SetName, ImageURL: c.ImageURL}
		if c.Types != nil {
			types := c.Types
			yc.Types = &types
		}
		if c.Colors != nil {
			colors := c.Colors
			yc.Colors = &colors
		}
		out = append(out, yc)
	}
	return map[string][]yamlCard{"cards": out}
}

// Write stores cards at path as JSON or YAML, picked by extension
func Write(path string, cards []card.Card) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(toYAML(cards))
	case ".json", "":
		data, err = json.MarshalIndent(struct {
			Cards []card.Card `json:"cards"`
		}{cards}, "", "  ")
	default:
		return fmt.Errorf("unsupported snapshot format: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
