package geom

import (
	"errors"
	"fmt"
)

var (
	// ErrSegments is returned when a template would have no segments.
	ErrSegments = errors.New("geom: segment count must be positive")
	// ErrExtent is returned for a non-positive template size.
	ErrExtent = errors.New("geom: template size must be positive")
)

// Kind names a shared template.
type Kind string

const (
	KindLine       Kind = "line"
	KindRibbon     Kind = "ribbon"
	KindExtrusion  Kind = "extrusion"
	KindHandle     Kind = "handle"
	KindConnectors Kind = "connectors"
)

// Kinds lists every template a registry holds.
var Kinds = []Kind{KindLine, KindRibbon, KindExtrusion, KindHandle, KindConnectors}

// Options sizes the templates.
type Options struct {
	// Segments is the subdivision count along t for line, ribbon and extrusion.
	Segments int
	// ExtrusionHeight is the vertical extent of the extrusion volume. It must
	// exceed the terrain's height range so the volume cuts through it.
	ExtrusionHeight float32
	// HandleSize is the edge length of a control-point marker cube.
	HandleSize float32
}

func DefaultOptions() Options {
	return Options{
		Segments:        20,
		ExtrusionHeight: 1000,
		HandleSize:      0.5,
	}
}

// Registry holds the templates, built once and shared by every curve. Meshes
// handed out must not be modified.
type Registry struct {
	opts   Options
	meshes map[Kind]*Mesh
}

// NewRegistry builds every template up front. There is no lazy creation and
// no mutation afterwards, so a registry can be shared freely.
func NewRegistry(opts Options) (*Registry, error) {
	if opts.Segments <= 0 {
		return nil, fmt.Errorf("new registry: %d segments: %w", opts.Segments, ErrSegments)
	}
	if opts.ExtrusionHeight <= 0 || opts.HandleSize <= 0 {
		return nil, fmt.Errorf("new registry: extrusion height %v, handle size %v: %w",
			opts.ExtrusionHeight, opts.HandleSize, ErrExtent)
	}
	return &Registry{
		opts: opts,
		meshes: map[Kind]*Mesh{
			KindLine:       Line(opts.Segments),
			KindRibbon:     Ribbon(opts.Segments),
			KindExtrusion:  Box(1, opts.ExtrusionHeight, opts.Segments),
			KindHandle:     Cube(opts.HandleSize),
			KindConnectors: Connectors(),
		},
	}, nil
}

// Template returns the shared mesh for kind, or nil for an unknown kind.
func (r *Registry) Template(kind Kind) *Mesh {
	return r.meshes[kind]
}

func (r *Registry) Options() Options { return r.opts }
