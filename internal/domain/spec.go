package domain

import (
	"fmt"
	"regexp"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Distance is the similarity function used to rank vectors during search.
type Distance string

const (
	// DistanceCosine is cosine similarity, the only metric the builtin
	// collections use.
	DistanceCosine Distance = "Cosine"
	// DistanceDot is dot-product similarity.
	DistanceDot Distance = "Dot"
	// DistanceEuclid is euclidean distance.
	DistanceEuclid Distance = "Euclid"
)

// IsValid checks if the distance metric is supported.
func (d Distance) IsValid() bool {
	return d == DistanceCosine || d == DistanceDot || d == DistanceEuclid
}

// CollectionSpec describes a collection to provision: vector configuration
// plus the payload fields to index (immutable value object).
// Field order is declaration order and is preserved for reporting.
type CollectionSpec struct {
	name       string
	vectorSize int
	distance   Distance
	fields     []Field
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: collection name is required", ErrInvalidSpec)
	}
	if len(name) > 64 {
		return fmt.Errorf("%w: collection name too long (max 64)", ErrInvalidSpec)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: collection name must be alphanumeric with underscores and hyphens", ErrInvalidSpec)
	}
	return nil
}

func validateFields(fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name()] {
			return fmt.Errorf("%w: duplicate field name: %s", ErrInvalidSpec, f.Name())
		}
		seen[f.Name()] = true
	}
	return nil
}

// NewCollectionSpec validates and creates a CollectionSpec.
// Name: ^[a-zA-Z0-9_-]+$, 1-64 chars. VectorSize: > 0. Fields: unique names.
func NewCollectionSpec(name string, vectorSize int, distance Distance, fields []Field) (CollectionSpec, error) {
	if err := validateName(name); err != nil {
		return CollectionSpec{}, err
	}
	if vectorSize <= 0 {
		return CollectionSpec{}, fmt.Errorf("%w: vector size must be positive", ErrInvalidSpec)
	}
	if distance == "" {
		distance = DistanceCosine
	}
	if !distance.IsValid() {
		return CollectionSpec{}, fmt.Errorf("%w: invalid distance metric %q", ErrInvalidSpec, distance)
	}
	if err := validateFields(fields); err != nil {
		return CollectionSpec{}, err
	}
	return CollectionSpec{
		name:       name,
		vectorSize: vectorSize,
		distance:   distance,
		fields:     fields,
	}, nil
}

// Name returns the collection name.
func (s CollectionSpec) Name() string { return s.name }

// VectorSize returns the embedding dimensionality.
func (s CollectionSpec) VectorSize() int { return s.vectorSize }

// Distance returns the distance metric.
func (s CollectionSpec) Distance() Distance { return s.distance }

// Fields returns the payload fields in declaration order.
func (s CollectionSpec) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// ValidateUnique checks that collection names across specs are unique.
func ValidateUnique(specs []CollectionSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if seen[s.Name()] {
			return fmt.Errorf("%w: duplicate collection name: %s", ErrInvalidSpec, s.Name())
		}
		seen[s.Name()] = true
	}
	return nil
}
