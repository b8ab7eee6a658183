package referral

import (
	"github.com/referralworks/refnet/pkg/record"
)

// resolution is the intermediate product of the link resolver: every node
// discovered so far, the code index, and one parent pointer per linked node.
// Parent pointers are keyed by node so that upgrading a placeholder in place
// never invalidates links already made through it.
type resolution struct {
	nodes  []*Node          // discovery order
	byCode map[string]*Node // canonical code -> owning node
	parent map[*Node]*Node

	nextVirtualID int64
}

// resolve runs the link resolver over one snapshot in input order. For each
// record it admits a node (applying the duplicate-code upgrade rule) and then
// resolves the record's referrer immediately, so a code referenced before its
// owning record appears is first synthesized as a virtual placeholder and
// later upgraded when the real record arrives.
func resolve(records []record.Record, dir RecruiterDirectory) *resolution {
	res := &resolution{
		nodes:         make([]*Node, 0, len(records)),
		byCode:        make(map[string]*Node),
		parent:        make(map[*Node]*Node),
		nextVirtualID: -1,
	}

	seen := make(map[int64]bool, len(records))
	for _, rec := range records {
		// The collaborator store assigns positive identifiers; a record
		// without one cannot satisfy the one-node-per-identifier invariant
		// and is dropped. Repeated identifiers keep their first occurrence.
		if rec.ID <= 0 || seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true

		n := res.admit(rec, dir)

		ref := CanonicalCode(rec.ReferrerCode)
		if ref == "" || ref == n.Code {
			// No referrer, or a self-reference: candidate root either way.
			continue
		}
		p := res.byCode[ref]
		if p == nil {
			p = res.newVirtual(ref, dir)
		}
		if p == n {
			continue
		}
		res.parent[n] = p
	}

	return res
}

// admit creates the node for one record and registers its own code. If the
// code is already held by a virtual placeholder, the placeholder is upgraded
// in place: it takes on the real record's identity and display fields while
// children attached to it earlier stay attached. A code already held by a
// real record is never taken over; the later record still gets a node of its
// own but is not code-addressable.
func (res *resolution) admit(rec record.Record, dir RecruiterDirectory) *Node {
	n := &Node{
		ID:    rec.ID,
		Kind:  nodeKind(rec.Kind),
		Code:  CanonicalCode(rec.Code),
		Name:  rec.Name,
		Phone: rec.Phone,
		City:  rec.City,
	}
	if n.Kind == KindRecruiter && n.Code != "" && dir != nil {
		if info, ok := dir.Lookup(n.Code); ok {
			if n.Name == "" {
				n.Name = info.Name
			}
			n.RecruiterURL = info.URL
		}
	}

	if n.Code == "" {
		res.nodes = append(res.nodes, n)
		return n
	}

	prev, taken := res.byCode[n.Code]
	switch {
	case !taken:
		res.byCode[n.Code] = n
		res.nodes = append(res.nodes, n)
		return n
	case prev.IsVirtual:
		// Upgrade the placeholder now that the real recruiter is known.
		prev.ID = n.ID
		prev.Kind = n.Kind
		prev.Name = n.Name
		prev.Phone = n.Phone
		prev.City = n.City
		if n.RecruiterURL != "" {
			prev.RecruiterURL = n.RecruiterURL
		}
		prev.IsVirtual = false
		return prev
	default:
		// Duplicate own code: the earlier complete entry keeps it.
		res.nodes = append(res.nodes, n)
		return n
	}
}

// newVirtual synthesizes the shared placeholder for one unmatched referrer
// code. Created once per distinct code; every record referencing the code
// links to the same node.
func (res *resolution) newVirtual(code string, dir RecruiterDirectory) *Node {
	n := &Node{
		ID:        res.nextVirtualID,
		Kind:      KindVirtual,
		Code:      code,
		IsVirtual: true,
	}
	res.nextVirtualID--

	if dir != nil {
		if info, ok := dir.Lookup(code); ok {
			n.Name = info.Name
			n.RecruiterURL = info.URL
		}
	}
	if n.Name == "" {
		n.Name = placeholderName(code)
	}

	res.byCode[code] = n
	res.nodes = append(res.nodes, n)
	return n
}
