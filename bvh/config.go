package bvh

import (
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/broadphase/utils"
)

// TraversalMode selects how RayCast walks the tree.
type TraversalMode string

const (
	// TraversalGrandchildren tests the four grandchildren boxes of a node at once.
	TraversalGrandchildren = TraversalMode("grandchildren")
	// TraversalPerNode tests one box per visited node.
	TraversalPerNode = TraversalMode("per_node")
)

// DefaultInitialCapacity is the number of arena slots a tree starts with when none is configured.
const DefaultInitialCapacity = 64

// Config describes how a Tree is built and queried.
type Config struct {
	// BoundsExpansionMargin inflates every leaf box so small motions do not require a reinsert.
	BoundsExpansionMargin float64       `json:"bounds_expansion_margin,omitempty"`
	Traversal             TraversalMode `json:"traversal,omitempty"`
	InitialCapacity       int           `json:"initial_capacity,omitempty"`
}

// DefaultConfig returns the configuration used when no attributes are given.
func DefaultConfig() Config {
	return Config{
		Traversal:       TraversalGrandchildren,
		InitialCapacity: DefaultInitialCapacity,
	}
}

// Validate ensures all parts of the config are valid.
func (config *Config) Validate(path string) error {
	if !utils.IsFinite(config.BoundsExpansionMargin) || config.BoundsExpansionMargin < 0 {
		return utils.NewConfigValidationFieldInvalidError(path, "bounds_expansion_margin", config.BoundsExpansionMargin)
	}
	switch config.Traversal {
	case "", TraversalGrandchildren, TraversalPerNode:
	default:
		return utils.NewConfigValidationFieldInvalidError(path, "traversal", config.Traversal)
	}
	if config.InitialCapacity < 0 {
		return utils.NewConfigValidationFieldInvalidError(path, "initial_capacity", config.InitialCapacity)
	}
	return nil
}

// withDefaults fills unset fields with their default values.
func (config Config) withDefaults() Config {
	if config.Traversal == "" {
		config.Traversal = TraversalGrandchildren
	}
	if config.InitialCapacity == 0 {
		config.InitialCapacity = DefaultInitialCapacity
	}
	return config
}

// DecodeConfig converts loosely typed attributes, as read from JSON, into a Config on top of the defaults.
// Unknown keys are rejected.
func DecodeConfig(attributes map[string]interface{}) (Config, error) {
	out := DefaultConfig()
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return Config{}, errors.Wrap(err, "cannot decode tree config")
	}
	if len(md.Unused) != 0 {
		sort.Strings(md.Unused)
		return Config{}, errors.Errorf("unknown tree config attributes: %s", strings.Join(md.Unused, ", "))
	}
	return out, nil
}
