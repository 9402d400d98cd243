// Package provision implements idempotent collection provisioning against
// the management API: ensure each spec exists, index its payload fields,
// and report the final inventory.
package provision

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vektorops/qdrant-init/internal/domain"
	"github.com/vektorops/qdrant-init/internal/metrics"
)

// FieldFailure records a payload index request that failed.
type FieldFailure struct {
	Field string
	Err   error
}

// Result is the outcome of provisioning one collection.
// Index failures are recorded but do not fail the collection: the
// collection exists either way, and a rerun can retry the indexes.
type Result struct {
	Name           string
	Created        bool
	AlreadyExisted bool
	Err            error
	FieldFailures  []FieldFailure
}

// Succeeded reports whether the collection exists after the attempt.
func (r Result) Succeeded() bool { return r.Err == nil }

// Summary aggregates the results of one provisioning run.
type Summary struct {
	Results []Result
}

// Total returns the number of specifications processed.
func (s Summary) Total() int { return len(s.Results) }

// Succeeded returns the number of collections that exist after the run.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// Service provisions collections and reports inventory.
// Human-readable progress goes to out; diagnostics go to the logger.
type Service struct {
	api     API
	out     io.Writer
	logger  *zap.Logger
	metrics *metrics.Set
}

// New creates a Service. metrics may be nil.
func New(api API, out io.Writer, logger *zap.Logger, m *metrics.Set) *Service {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, out: out, logger: logger, metrics: m}
}

// Ensure makes one collection exist. Already-present collections are a
// success without any creation request. Creation is attempted once, no
// retry; a failed creation skips the field indexes entirely.
func (s *Service) Ensure(ctx context.Context, spec domain.CollectionSpec) Result {
	res := Result{Name: spec.Name()}

	exists, err := s.api.Exists(ctx, spec.Name())
	if err != nil {
		// A failed existence check is not proof of absence. Keep the
		// original fall-through-to-create behavior, but surface the cause
		// so a transiently unreachable collection shows up as a failed
		// create instead of a silent skip.
		s.logger.Warn("existence check failed, attempting create",
			zap.String("collection", spec.Name()),
			zap.Error(err),
		)
	}
	if exists {
		res.AlreadyExisted = true
		s.metrics.IncExisting()
		fmt.Fprintf(s.out, "  → Collection '%s' already exists, skipping...\n", spec.Name())
		return res
	}

	if err := s.api.CreateCollection(ctx, spec); err != nil {
		res.Err = err
		s.metrics.IncFailed()
		s.logger.Error("collection create failed",
			zap.String("collection", spec.Name()),
			zap.Error(err),
		)
		fmt.Fprintf(s.out, "  ✗ Failed to create collection '%s': %v\n", spec.Name(), err)
		return res
	}
	res.Created = true
	s.metrics.IncCreated()
	fmt.Fprintf(s.out, "  ✓ Created collection '%s'\n", spec.Name())

	for _, f := range spec.Fields() {
		if err := s.api.CreateFieldIndex(ctx, spec.Name(), f); err != nil {
			res.FieldFailures = append(res.FieldFailures, FieldFailure{Field: f.Name(), Err: err})
			s.metrics.IncIndexFailure(spec.Name())
			s.logger.Warn("field index failed",
				zap.String("collection", spec.Name()),
				zap.String("field", f.Name()),
				zap.Error(err),
			)
			fmt.Fprintf(s.out, "    ✗ Failed to index field '%s': %v\n", f.Name(), err)
			continue
		}
		fmt.Fprintf(s.out, "    → Indexed field '%s'\n", f.Name())
	}
	return res
}

// Run provisions all specs in declaration order.
func (s *Service) Run(ctx context.Context, specs []domain.CollectionSpec) Summary {
	sum := Summary{Results: make([]Result, 0, len(specs))}
	for _, spec := range specs {
		sum.Results = append(sum.Results, s.Ensure(ctx, spec))
	}
	return sum
}

// Inventory returns the names of all existing collections in service order.
func (s *Service) Inventory(ctx context.Context) ([]string, error) {
	names, err := s.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	return names, nil
}
