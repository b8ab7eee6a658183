package referral

import (
	"strconv"
	"strings"

	"github.com/referralworks/refnet/pkg/record"
)

// NodeKind classifies a node in the referral network.
type NodeKind string

const (
	KindLead      NodeKind = "lead"
	KindRecruiter NodeKind = "recruiter"
	// KindVirtual marks a synthesized placeholder for a referral code that
	// has no matching record in the snapshot.
	KindVirtual NodeKind = "virtual"
)

// Node is one entry in the reconstructed referral network. Real nodes carry
// the identifier of their originating record; virtual nodes carry negative
// synthetic identifiers so the two spaces never collide.
type Node struct {
	ID           int64    `json:"id"`
	Kind         NodeKind `json:"kind"`
	Code         string   `json:"code,omitempty"`
	Name         string   `json:"displayName,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	City         string   `json:"city,omitempty"`
	RecruiterURL string   `json:"recruiterUrl,omitempty"`
	IsVirtual    bool     `json:"isVirtual"`

	// Children holds the immediate referrals in ascending identifier order,
	// which keeps output deterministic for a given snapshot.
	Children []*Node `json:"children"`

	// DirectLeadCount and DirectRecruiterCount count only immediate children
	// of the matching kind. Virtual children appear in Children and in
	// TotalDescendants but in neither direct count.
	DirectLeadCount      int `json:"directLeadCount"`
	DirectRecruiterCount int `json:"directRecruiterCount"`

	// TotalDescendants counts every node in the subtree excluding this one.
	TotalDescendants int `json:"totalDescendants"`
}

// Stats summarizes one forest (or one focused subtree).
type Stats struct {
	TotalNodes   int `json:"totalNodes"`
	VirtualNodes int `json:"virtualNodes"`
	CyclesBroken int `json:"cyclesBroken"`
	MaxDepth     int `json:"maxDepth"`
}

// Forest is the result of one build: the rooted trees, the cycle orphans,
// aggregate statistics, and the outcome of the optional focus query.
type Forest struct {
	Roots   []*Node `json:"roots"`
	Orphans []*Node `json:"orphans"`
	Stats   Stats   `json:"stats"`
	Focus   *Focus  `json:"focus,omitempty"`
}

// Focus reports the outcome of a focus query. On a hit the forest itself is
// narrowed to the focused subtree; a miss is an explicit not-found result
// alongside the full forest, never an error. Focus is best-effort UI
// drill-down.
type Focus struct {
	Found bool `json:"found"`
}

// FocusKey selects a node by record identifier or by referral code.
type FocusKey struct {
	id   int64
	code string
	byID bool
}

// FocusID selects a node by its identifier.
func FocusID(id int64) *FocusKey {
	return &FocusKey{id: id, byID: true}
}

// FocusCode selects a node by its referral code.
func FocusCode(code string) *FocusKey {
	return &FocusKey{code: CanonicalCode(code)}
}

// ParseFocusKey interprets a raw focus value: all-digit input selects by
// identifier, anything else by code. Blank input yields no key.
func ParseFocusKey(s string) *FocusKey {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FocusID(id)
	}
	return FocusCode(s)
}

// Options configures one build. The recruiter directory is injected per
// build rather than held in package state, so concurrent builds never share
// mutable lookups.
type Options struct {
	// Focus, when set, requests extraction of a single node's subtree.
	Focus *FocusKey

	// Directory optionally resolves recruiter codes to display names and
	// profile URLs. Nil disables enrichment.
	Directory RecruiterDirectory
}

// nodeKind maps a record kind onto the node kind space.
func nodeKind(k record.Kind) NodeKind {
	if k == record.KindRecruiter {
		return KindRecruiter
	}
	return KindLead
}

// CanonicalCode normalizes a referral code for lookups: surrounding
// whitespace stripped, compared case-insensitively.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
