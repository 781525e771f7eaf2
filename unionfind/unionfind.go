// Package unionfind implements a disjoint-set forest over symbolic-variable
// identities, with path compression and union-by-rank (§4.2).
package unionfind

import "github.com/symvar/interleave/variable"

// UnionFind is a disjoint-set forest keyed by *variable.Var. The zero value
// is not usable; construct one with New.
type UnionFind struct {
	parent map[*variable.Var]*variable.Var
	rank   map[*variable.Var]int
	// order records first-Add order so GetDisjointSets can produce a
	// deterministic partition: member and group order both follow the
	// order variables were first seen, never Go's randomized map
	// iteration (§4.2, §9 "never iterate hash-based containers without a
	// wrapping sort by a stable key").
	order []*variable.Var
}

// New returns an empty UnionFind.
func New() *UnionFind {
	return &UnionFind{
		parent: make(map[*variable.Var]*variable.Var),
		rank:   make(map[*variable.Var]int),
	}
}

// Add installs x as its own singleton class if it is not already known.
// It is idempotent.
func (u *UnionFind) Add(x *variable.Var) {
	if _, ok := u.parent[x]; ok {
		return
	}
	u.parent[x] = x
	u.rank[x] = 0
	u.order = append(u.order, x)
}

// Find returns the representative of x's class, adding x first if needed.
func (u *UnionFind) Find(x *variable.Var) *variable.Var {
	u.Add(x)
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		next := u.parent[x]
		u.parent[x] = root
		x = next
	}
	return root
}

// Union merges x's and y's classes. Both are added first if needed.
func (u *UnionFind) Union(x, y *variable.Var) {
	rx, ry := u.Find(x), u.Find(y)
	if rx == ry {
		return
	}
	if u.rank[rx] < u.rank[ry] {
		rx, ry = ry, rx
	}
	u.parent[ry] = rx
	if u.rank[rx] == u.rank[ry] {
		u.rank[rx]++
	}
}

// GetDisjointSets returns the current partition as a list of lists. Each
// inner list is one equivalence class, singletons included. Both the
// ordering of the groups and the ordering of members within a group are
// deterministic for a given sequence of Add/Union calls (first-seen
// order), which is required so that re-running the heuristic on the same
// input reproduces the same partition (§4.2, §8 invariant 6).
func (u *UnionFind) GetDisjointSets() [][]*variable.Var {
	members := make(map[*variable.Var][]*variable.Var, len(u.order))
	var roots []*variable.Var
	for _, x := range u.order {
		root := u.Find(x)
		if _, ok := members[root]; !ok {
			roots = append(roots, root)
		}
		members[root] = append(members[root], x)
	}
	result := make([][]*variable.Var, len(roots))
	for i, root := range roots {
		result[i] = members[root]
	}
	return result
}
