package semkit

import (
	"fmt"

	"github.com/semkit/semkit/dmrs"
	"github.com/semkit/semkit/eds"
	"github.com/semkit/semkit/sem"
)

// Scoped converts any graph to the canonical scoped form, dispatching on
// its kind. Bare dependency graphs carry no scope partition and are
// refused with sem.ErrConversionNotSupported.
func Scoped(g sem.Graph) (*sem.ScopedGraph, error) {
	switch g.GraphKind() {
	case sem.KindScoped:
		return g.(*sem.ScopedGraph), nil
	case sem.KindDependency:
		return dmrs.ToScoped(g.(*dmrs.DMRS))
	default:
		return nil, fmt.Errorf("%w: %s to scoped", sem.ErrConversionNotSupported, g.GraphKind())
	}
}

// Dependency converts any graph to the dependency form.
func Dependency(g sem.Graph) (*dmrs.DMRS, error) {
	switch g.GraphKind() {
	case sem.KindDependency:
		return g.(*dmrs.DMRS), nil
	case sem.KindScoped:
		return dmrs.FromScoped(g.(*sem.ScopedGraph))
	default:
		return nil, fmt.Errorf("%w: %s to dependency", sem.ErrConversionNotSupported, g.GraphKind())
	}
}

// Bare projects any graph onto the bare dependency form, rescoping a
// dependency graph first. A bare graph passes through unchanged.
func Bare(g sem.Graph, opts ...eds.Option) (*eds.EDS, error) {
	if g.GraphKind() == sem.KindBare {
		return g.(*eds.EDS), nil
	}
	s, err := Scoped(g)
	if err != nil {
		return nil, err
	}
	return eds.FromScoped(s, opts...)
}
