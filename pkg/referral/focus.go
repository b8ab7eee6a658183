package referral

// focusForest narrows a built forest to the subtree of the node matching the
// key. The focused node becomes the single root and statistics are recomputed
// over just its subtree; CyclesBroken keeps the full build's count since it
// reports input quality, not subtree shape. A miss keeps the full forest and
// reports an explicit not-found result, never an error.
func focusForest(f *Forest, key *FocusKey) *Forest {
	target := locate(f.Roots, key)
	if target == nil {
		target = locate(f.Orphans, key)
	}
	if target == nil {
		f.Focus = &Focus{}
		return f
	}

	stats := subtreeStats(target)
	stats.CyclesBroken = f.Stats.CyclesBroken
	return &Forest{
		Roots:   []*Node{target},
		Orphans: []*Node{},
		Stats:   stats,
		Focus:   &Focus{Found: true},
	}
}

// locate scans the given trees depth-first with an explicit stack. First
// match wins; codes are unique among recruiter and virtual nodes by
// construction, so ambiguity only arises on malformed input.
func locate(trees []*Node, key *FocusKey) *Node {
	stack := make([]*Node, 0, len(trees))
	for i := len(trees) - 1; i >= 0; i-- {
		stack = append(stack, trees[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if key.matches(n) {
			return n
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return nil
}

func (k *FocusKey) matches(n *Node) bool {
	if k.byID {
		return n.ID == k.id
	}
	return n.Code != "" && n.Code == k.code
}
