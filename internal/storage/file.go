// Package storage provides read-only snapshot access backed by files.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bobmcallan/folio/internal/common"
)

var (
	// ErrSnapshotNotFound is returned when a snapshot file does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSnapshotMalformed is returned when a snapshot cannot be decoded
	// into a top-level array.
	ErrSnapshotMalformed = errors.New("snapshot malformed")
)

// FileStore reads snapshots from the paths named in the configuration.
// Every call re-reads the file so edits are picked up on the next query.
type FileStore struct {
	holdingsPath string
	timelinePath string
	logger       *common.Logger
}

// NewFileStore creates a FileStore for the configured snapshot paths.
func NewFileStore(logger *common.Logger, config *common.SnapshotConfig) *FileStore {
	logger.Debug().
		Str("holdings", config.Holdings).
		Str("timeline", config.Timeline).
		Msg("Snapshot store opened")

	return &FileStore{
		holdingsPath: config.Holdings,
		timelinePath: config.Timeline,
		logger:       logger,
	}
}

// LoadHoldings reads the holdings snapshot.
func (fs *FileStore) LoadHoldings(ctx context.Context) ([]json.RawMessage, error) {
	return fs.load(ctx, "holdings", fs.holdingsPath)
}

// LoadTimeline reads the performance timeline snapshot.
func (fs *FileStore) LoadTimeline(ctx context.Context) ([]json.RawMessage, error) {
	return fs.load(ctx, "timeline", fs.timelinePath)
}

func (fs *FileStore) load(ctx context.Context, name, path string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s snapshot '%s': %w", name, path, ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("failed to read %s snapshot %s: %w", name, path, err)
	}

	var records []json.RawMessage
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		records, err = decodeYAML(data)
	default:
		records, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s snapshot %s: %w: %v", name, path, ErrSnapshotMalformed, err)
	}

	fs.logger.Debug().
		Str("snapshot", name).
		Str("path", path).
		Int("records", len(records)).
		Msg("Snapshot loaded")

	return records, nil
}

// decodeJSON splits a JSON array into its elements without decoding them.
func decodeJSON(data []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		// A literal null is not an array.
		return nil, errors.New("top-level value is not an array")
	}
	return records, nil
}

// decodeYAML reads a YAML sequence and re-encodes each element as JSON so
// both formats reach the analytics in the same shape. Timestamps keep their
// source text. An element that has no JSON form becomes null, which the
// analytics skip like any other non-object record.
func decodeYAML(data []byte) ([]json.RawMessage, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, errors.New("top-level value is not a sequence")
	}

	items := doc.Content[0].Content
	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		records = append(records, yamlRecord(item))
	}
	return records, nil
}

func yamlRecord(n *yaml.Node) json.RawMessage {
	c := yamlConverter{active: make(map[*yaml.Node]bool)}
	v, err := c.value(n)
	if err != nil {
		return json.RawMessage("null")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return raw
}

// yamlConverter turns a node tree into JSON-compatible values. Mapping keys
// must be scalars and are taken as written.
type yamlConverter struct {
	active map[*yaml.Node]bool
}

func (c yamlConverter) value(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil

	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := c.value(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		return c.mapping(n)

	case yaml.AliasNode:
		if n.Alias == nil || c.active[n.Alias] {
			return nil, errors.New("recursive alias")
		}
		c.active[n.Alias] = true
		defer delete(c.active, n.Alias)
		return c.value(n.Alias)
	}
	return nil, fmt.Errorf("unsupported node kind %d", n.Kind)
}

func (c yamlConverter) mapping(n *yaml.Node) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(n.Content)/2)
	var merged []map[string]interface{}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key is not a scalar", key.Line)
		}
		v, err := c.value(val)
		if err != nil {
			return nil, err
		}
		if key.ShortTag() == "!!merge" {
			switch m := v.(type) {
			case map[string]interface{}:
				merged = append(merged, m)
			case []interface{}:
				for _, e := range m {
					if em, ok := e.(map[string]interface{}); ok {
						merged = append(merged, em)
					}
				}
			}
			continue
		}
		out[key.Value] = v
	}

	// Explicit keys win over merged ones; earlier merges win over later.
	for _, m := range merged {
		for k, v := range m {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}
