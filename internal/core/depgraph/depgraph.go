// Package depgraph holds the read-only projections over a task's dependency
// edges: completion gating and cycle reachability. Both are recomputed on
// demand, never cached, since dependency statuses change independently.
package depgraph

import (
	"context"

	"taskdeck/internal/core/domain"
)

// EdgeLoader returns the outgoing dependency edges for each of the given task
// ids. Adapters back this with their own storage, so reachability walks stay
// proportional to the visited subgraph rather than the whole task set.
type EdgeLoader func(ctx context.Context, taskIDs []uint64) (map[uint64][]uint64, error)

// Blocking returns the dependency ids that are not completed. A dangling edge
// (deleted target) counts as not completed. Order follows the edge list.
func Blocking(dependencies []domain.Dependency) []uint64 {
	var blocking []uint64
	for _, dep := range dependencies {
		if dep.Dependency == nil || dep.Dependency.Status != domain.TaskStatusCompleted {
			blocking = append(blocking, dep.DependencyID)
		}
	}
	return blocking
}

// CanComplete reports whether every dependency is completed. A task with no
// dependencies is always completable.
func CanComplete(dependencies []domain.Dependency) bool {
	return len(Blocking(dependencies)) == 0
}

// WouldCycle reports whether assigning the proposed dependency set to taskID
// would make taskID reachable from itself through the proposed edges plus the
// edges already stored. The walk visits each node once and loads edges one
// frontier at a time.
func WouldCycle(ctx context.Context, taskID uint64, proposed []uint64, load EdgeLoader) (bool, error) {
	visited := map[uint64]bool{}
	frontier := make([]uint64, 0, len(proposed))
	for _, id := range proposed {
		if id == taskID {
			return true, nil
		}
		if !visited[id] {
			visited[id] = true
			frontier = append(frontier, id)
		}
	}

	for len(frontier) > 0 {
		edges, err := load(ctx, frontier)
		if err != nil {
			return false, err
		}

		next := frontier[:0:0]
		for _, id := range frontier {
			for _, dep := range edges[id] {
				if dep == taskID {
					return true, nil
				}
				if !visited[dep] {
					visited[dep] = true
					next = append(next, dep)
				}
			}
		}
		frontier = next
	}

	return false, nil
}
