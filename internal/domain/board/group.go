package board

import (
	"cmp"
	"slices"
)

// Group is a set of positions kept sorted by X, then Y.
type Group []Position

func newGroup(members map[Position]struct{}) Group {
	g := make(Group, 0, len(members))
	for pos := range members {
		g = append(g, pos)
	}
	slices.SortFunc(g, comparePositions)
	return g
}

func comparePositions(a, b Position) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

func (g Group) Contains(pos Position) bool {
	_, found := slices.BinarySearchFunc(g, pos, comparePositions)
	return found
}

// GroupAt returns the stones connected to pos through orthogonal steps onto stones of
// the same side. It is empty when pos holds no stone.
func (b *Board) GroupAt(pos Position) Group {
	side, ok := b.Get(pos)
	if !ok {
		return nil
	}

	visited := map[Position]struct{}{pos: {}}
	stack := []Position{pos}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, neighbour := range b.Neighbours(v) {
			if _, seen := visited[neighbour]; seen {
				continue
			}
			if s, _ := b.Get(neighbour); s != side {
				continue
			}
			visited[neighbour] = struct{}{}
			stack = append(stack, neighbour)
		}
	}

	return newGroup(visited)
}

// IsSurrounded reports whether a non-empty group has no liberties left.
// An empty group is never surrounded.
func (b *Board) IsSurrounded(group Group) bool {
	if len(group) == 0 {
		return false
	}
	for _, member := range group {
		if len(b.Neighbours(member)) < len(b.AdjacentPositions(member)) {
			return false
		}
	}
	return true
}

// DeleteGroup empties every member of group.
func (b *Board) DeleteGroup(group Group) {
	for _, member := range group {
		b.remove(member)
	}
}

// Groups partitions all stones into groups. The scan runs x then y from 1 and skips
// positions already assigned, so each stone is discovered exactly once.
func (b *Board) Groups() []Group {
	assigned := make([]bool, len(b.cells))

	var groups []Group
	for x := 1; x <= b.n; x++ {
		for y := 1; y <= b.n; y++ {
			pos := Position{X: x, Y: y}
			if assigned[b.index(pos)] || !b.Contains(pos) {
				continue
			}

			group := b.GroupAt(pos)
			for _, member := range group {
				assigned[b.index(member)] = true
			}
			groups = append(groups, group)
		}
	}
	return groups
}
