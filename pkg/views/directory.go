// Package views shapes a built forest for the three consuming presentation
// surfaces: the flat directory, the force-directed graph canvas, and the
// collapsible tree view (which consumes the forest JSON directly). Rendering
// itself stays with the consumers.
package views

import (
	"sort"

	"github.com/referralworks/refnet/pkg/referral"
)

// DirectoryEntry is one row of the flat recruiter directory.
type DirectoryEntry struct {
	ID                   int64  `json:"id"`
	Code                 string `json:"code"`
	Name                 string `json:"displayName"`
	Phone                string `json:"phone,omitempty"`
	City                 string `json:"city,omitempty"`
	RecruiterURL         string `json:"recruiterUrl,omitempty"`
	IsVirtual            bool   `json:"isVirtual"`
	DirectLeadCount      int    `json:"directLeadCount"`
	DirectRecruiterCount int    `json:"directRecruiterCount"`
	TotalDescendants     int    `json:"totalDescendants"`
}

// Directory flattens the forest into one entry per referral code, preferring
// a non-virtual node over a virtual one when both exist for the same code.
// Entries are ordered by code for stable output.
func Directory(f *referral.Forest) []DirectoryEntry {
	byCode := make(map[string]*referral.Node)
	walk(f, func(n *referral.Node) {
		if n.Code == "" {
			return
		}
		prev, ok := byCode[n.Code]
		if !ok || (prev.IsVirtual && !n.IsVirtual) {
			byCode[n.Code] = n
		}
	})

	entries := make([]DirectoryEntry, 0, len(byCode))
	for _, n := range byCode {
		entries = append(entries, DirectoryEntry{
			ID:                   n.ID,
			Code:                 n.Code,
			Name:                 n.Name,
			Phone:                n.Phone,
			City:                 n.City,
			RecruiterURL:         n.RecruiterURL,
			IsVirtual:            n.IsVirtual,
			DirectLeadCount:      n.DirectLeadCount,
			DirectRecruiterCount: n.DirectRecruiterCount,
			TotalDescendants:     n.TotalDescendants,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}

// walk visits every node in roots then orphans, pre-order, with an explicit
// stack.
func walk(f *referral.Forest, visit func(*referral.Node)) {
	trees := make([]*referral.Node, 0, len(f.Roots)+len(f.Orphans))
	trees = append(trees, f.Roots...)
	trees = append(trees, f.Orphans...)

	stack := make([]*referral.Node, 0, len(trees))
	for i := len(trees) - 1; i >= 0; i-- {
		stack = append(stack, trees[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
