package views

import (
	"github.com/referralworks/refnet/pkg/referral"
)

// GraphNode is one vertex of the canvas feed.
type GraphNode struct {
	ID                   int64             `json:"id"`
	Label                string            `json:"label"`
	Kind                 referral.NodeKind `json:"kind"`
	IsVirtual            bool              `json:"isVirtual"`
	DirectLeadCount      int               `json:"directLeadCount"`
	DirectRecruiterCount int               `json:"directRecruiterCount"`
	TotalDescendants     int               `json:"totalDescendants"`
}

// GraphLink is one parent-to-child edge of the canvas feed.
type GraphLink struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

// GraphData is the flat node/edge feed consumed by the force-directed
// canvas. Order follows forest traversal order, so output is deterministic
// for a given forest.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// Graph flattens the forest into the canvas feed.
func Graph(f *referral.Forest) GraphData {
	data := GraphData{
		Nodes: make([]GraphNode, 0, f.Stats.TotalNodes),
		Links: make([]GraphLink, 0, f.Stats.TotalNodes),
	}
	walk(f, func(n *referral.Node) {
		data.Nodes = append(data.Nodes, GraphNode{
			ID:                   n.ID,
			Label:                n.Name,
			Kind:                 n.Kind,
			IsVirtual:            n.IsVirtual,
			DirectLeadCount:      n.DirectLeadCount,
			DirectRecruiterCount: n.DirectRecruiterCount,
			TotalDescendants:     n.TotalDescendants,
		})
		for _, c := range n.Children {
			data.Links = append(data.Links, GraphLink{Source: n.ID, Target: c.ID})
		}
	})
	return data
}
