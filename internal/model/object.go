package model

import "sort"

// ObjectType classifies a physical object. Closed variant set.
type ObjectType string

const (
	TypeSensor   ObjectType = "sensor"
	TypeDevice   ObjectType = "device"
	TypeActuator ObjectType = "actuator"
	TypeGateway  ObjectType = "gateway"
	TypeBeacon   ObjectType = "beacon"
)

// Valid reports whether the type is one of the known variants.
func (t ObjectType) Valid() bool {
	switch t {
	case TypeSensor, TypeDevice, TypeActuator, TypeGateway, TypeBeacon:
		return true
	}
	return false
}

// Material describes what an object is made of. Zero value = unset.
type Material string

const (
	MaterialUnset     Material = ""
	MaterialMetal     Material = "metal"
	MaterialPlastic   Material = "plastic"
	MaterialGlass     Material = "glass"
	MaterialCeramic   Material = "ceramic"
	MaterialComposite Material = "composite"
)

// PhysicalObject is one located entity in the catalog.
// The id is immutable for the object's lifetime; the location changes
// only through the catalog manager's Move, which keeps the spatial
// index bucket in lock-step. All other attributes are freely mutable
// by callers holding the handle.
type PhysicalObject struct {
	id   string
	Name string
	Type ObjectType

	location Location

	Material    Material
	Mass        float64
	Volume      float64
	Temperature float64

	connections map[string]struct{}
	tags        map[string]struct{}
}

// Option configures optional attributes at construction time.
type Option func(*PhysicalObject)

// WithMaterial sets the object material.
func WithMaterial(m Material) Option {
	return func(o *PhysicalObject) { o.Material = m }
}

// WithMass sets the object mass.
func WithMass(mass float64) Option {
	return func(o *PhysicalObject) { o.Mass = mass }
}

// WithVolume sets the object volume.
func WithVolume(volume float64) Option {
	return func(o *PhysicalObject) { o.Volume = volume }
}

// WithTemperature sets the object temperature.
func WithTemperature(temp float64) Option {
	return func(o *PhysicalObject) { o.Temperature = temp }
}

// WithTags adds classification tags.
func WithTags(tags ...string) Option {
	return func(o *PhysicalObject) {
		for _, tag := range tags {
			o.tags[tag] = struct{}{}
		}
	}
}

// WithConnections adds outgoing connection edges. Targets are not
// required to exist anywhere; dangling references are allowed.
func WithConnections(ids ...string) Option {
	return func(o *PhysicalObject) {
		for _, id := range ids {
			o.connections[id] = struct{}{}
		}
	}
}

// NewPhysicalObject creates a new catalog entity.
func NewPhysicalObject(id, name string, typ ObjectType, loc Location, opts ...Option) *PhysicalObject {
	obj := &PhysicalObject{
		id:          id,
		Name:        name,
		Type:        typ,
		location:    loc,
		connections: make(map[string]struct{}),
		tags:        make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(obj)
	}
	return obj
}

// ID returns the unique object id (immutable after creation).
func (o *PhysicalObject) ID() string {
	return o.id
}

// Location returns a copy of the object's coordinates.
func (o *PhysicalObject) Location() Location {
	return o.location
}

// SetLocation overwrites the stored coordinates. The spatial index
// bucket is keyed by the old coordinates; use the manager's Move so
// the bucket is updated in the same step.
func (o *PhysicalObject) SetLocation(loc Location) {
	o.location = loc
}

// DistanceTo returns the Euclidean distance to another object.
func (o *PhysicalObject) DistanceTo(other *PhysicalObject) float64 {
	return o.location.DistanceTo(other.location)
}

// Connect adds a directed edge to the given id. Adding an existing
// edge is a no-op; the target does not have to exist.
func (o *PhysicalObject) Connect(id string) {
	o.connections[id] = struct{}{}
}

// Disconnect removes the directed edge to the given id, if present.
func (o *PhysicalObject) Disconnect(id string) {
	delete(o.connections, id)
}

// ConnectedTo reports whether an edge to the given id exists.
func (o *PhysicalObject) ConnectedTo(id string) bool {
	_, ok := o.connections[id]
	return ok
}

// Connections returns the outgoing edge targets, sorted.
func (o *PhysicalObject) Connections() []string {
	ids := make([]string, 0, len(o.connections))
	for id := range o.connections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ConnectionCount returns the number of outgoing edges.
func (o *PhysicalObject) ConnectionCount() int {
	return len(o.connections)
}

// AddTag adds a classification tag.
func (o *PhysicalObject) AddTag(tag string) {
	o.tags[tag] = struct{}{}
}

// RemoveTag removes a tag, if present.
func (o *PhysicalObject) RemoveTag(tag string) {
	delete(o.tags, tag)
}

// HasTag reports whether the object carries the tag.
func (o *PhysicalObject) HasTag(tag string) bool {
	_, ok := o.tags[tag]
	return ok
}

// Tags returns all tags, sorted.
func (o *PhysicalObject) Tags() []string {
	tags := make([]string, 0, len(o.tags))
	for tag := range o.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
