package referral

import (
	"sort"
)

// assemble turns the resolver's parent pointers into rooted trees. Nodes
// without a parent become roots. Anything still unplaced after the root pass
// hangs off a reference cycle; each cycle is broken by severing the parent
// link of the node that would re-enter the traversal path, which then becomes
// an orphan root and has its subtree built normally from there.
func assemble(res *resolution) *Forest {
	children := make(map[*Node][]*Node, len(res.parent))
	for child, parent := range res.parent {
		children[parent] = append(children[parent], child)
	}
	// Each node has at most one parent, so map iteration order above cannot
	// duplicate edges; sorting restores determinism.
	for _, list := range children {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}

	placed := make(map[*Node]bool, len(res.nodes))

	roots := make([]*Node, 0)
	for _, n := range res.nodes {
		if _, linked := res.parent[n]; !linked {
			roots = append(roots, n)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].ID < roots[j].ID })
	for _, root := range roots {
		place(root, children, placed)
	}

	orphans := make([]*Node, 0)
	remaining := make([]*Node, 0)
	for _, n := range res.nodes {
		if !placed[n] {
			remaining = append(remaining, n)
		}
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].ID < remaining[j].ID })
	for _, n := range remaining {
		if placed[n] {
			continue
		}
		cut := findCycleCut(n, res.parent, placed)
		orphans = append(orphans, cut)
		place(cut, children, placed)
	}

	return &Forest{Roots: roots, Orphans: orphans}
}

// place builds the subtree under root top-down with an explicit stack,
// attaching children in the presorted ascending order and skipping any child
// already placed elsewhere (that is how a severed back edge stays severed).
// Direct per-kind counts are filled here; descendant totals come later in
// the aggregation pass.
func place(root *Node, children map[*Node][]*Node, placed map[*Node]bool) {
	placed[root] = true
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		kids := children[n]
		n.Children = make([]*Node, 0, len(kids))
		for _, c := range kids {
			if placed[c] {
				continue
			}
			placed[c] = true
			n.Children = append(n.Children, c)
			stack = append(stack, c)

			switch c.Kind {
			case KindLead:
				n.DirectLeadCount++
			case KindRecruiter:
				n.DirectRecruiterCount++
			}
		}
	}
}

// findCycleCut walks parent links upward from an unplaced node, marking the
// path, until the next hop would land on a node already on it. The node
// holding that re-entering link is the cut point: its parent edge is dropped
// and it roots the orphan subtree. Walking from the lowest unplaced
// identifier first keeps the choice deterministic.
func findCycleCut(start *Node, parent map[*Node]*Node, placed map[*Node]bool) *Node {
	onPath := map[*Node]bool{start: true}
	cur := start
	for {
		p, linked := parent[cur]
		if !linked || placed[p] {
			// Cannot happen after the root pass; treat the current node as
			// the cut rather than loop.
			return cur
		}
		if onPath[p] {
			return cur
		}
		onPath[p] = true
		cur = p
	}
}
