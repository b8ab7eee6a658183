package referral

// finalize runs the post-order aggregation pass over roots then orphans.
// It is the last structural pass, so every total reflects the cycle-breaking
// decisions already made by the builder.
func finalize(f *Forest) {
	stats := Stats{CyclesBroken: len(f.Orphans)}
	for _, root := range f.Roots {
		nodes, virtual, depth := subtreeTotals(root)
		accumulate(&stats, nodes, virtual, depth)
	}
	for _, orphan := range f.Orphans {
		nodes, virtual, depth := subtreeTotals(orphan)
		accumulate(&stats, nodes, virtual, depth)
	}
	f.Stats = stats
}

// subtreeStats aggregates one subtree in isolation, as needed when a focus
// query recomputes statistics over just the focused node.
func subtreeStats(root *Node) Stats {
	var stats Stats
	nodes, virtual, depth := subtreeTotals(root)
	accumulate(&stats, nodes, virtual, depth)
	return stats
}

func accumulate(stats *Stats, nodes, virtual, depth int) {
	stats.TotalNodes += nodes
	stats.VirtualNodes += virtual
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
}

// subtreeTotals walks one subtree post-order with an explicit frame stack,
// filling TotalDescendants bottom-up. The explicit stack keeps pathologically
// deep chains from overflowing the call stack.
func subtreeTotals(root *Node) (nodes, virtual, depth int) {
	type frame struct {
		node  *Node
		next  int
		depth int
	}

	stack := []frame{{node: root, depth: 1}}
	for len(stack) > 0 {
		top := len(stack) - 1
		n := stack[top].node

		if stack[top].next < len(n.Children) {
			child := n.Children[stack[top].next]
			stack[top].next++
			stack = append(stack, frame{node: child, depth: stack[top].depth + 1})
			continue
		}

		n.TotalDescendants = 0
		for _, c := range n.Children {
			n.TotalDescendants += 1 + c.TotalDescendants
		}
		nodes++
		if n.IsVirtual {
			virtual++
		}
		if stack[top].depth > depth {
			depth = stack[top].depth
		}
		stack = stack[:top]
	}
	return nodes, virtual, depth
}
