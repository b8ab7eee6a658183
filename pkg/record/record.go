package record

import (
	"strconv"
	"strings"
)

// Kind classifies a source record as a lead or a recruiter.
type Kind string

const (
	KindLead      Kind = "lead"
	KindRecruiter Kind = "recruiter"
)

// Record is the canonical, typed form of one lead or recruiter entry.
// All optional fields are the empty string when the raw payload carried
// nothing usable for them.
type Record struct {
	ID           int64
	Kind         Kind
	Code         string // own referral code, recruiters only
	ReferrerCode string // code of whoever referred this record
	Name         string
	Phone        string
	City         string
}

// RawRecord is the string-keyed dynamic payload delivered by the intake
// sources. Different sources use different field names for the same concept,
// so extraction tries a primary key first and then a list of alternates.
type RawRecord map[string]any

// Candidate key lists, in priority order. The first key yielding a non-blank
// value wins.
var (
	idKeys       = []string{"id", "lead_id", "record_id"}
	kindKeys     = []string{"kind", "type", "role"}
	codeKeys     = []string{"referral_code", "code", "ref_code"}
	referrerKeys = []string{"referred_by", "referrer_code", "indicated_by", "parent_code"}
	nameKeys     = []string{"name", "full_name", "display_name"}
	phoneKeys    = []string{"phone", "phone_number", "whatsapp", "mobile"}
	cityKeys     = []string{"city", "town"}
)

// Normalize extracts the canonical fields from a raw payload. It never fails:
// fields that are missing, blank, or unparseable normalize to their zero
// value and flow downstream as "unknown". Extra fields are ignored.
func Normalize(raw RawRecord) Record {
	return Record{
		ID:           firstID(raw, idKeys),
		Kind:         ParseKind(firstString(raw, kindKeys)),
		Code:         firstString(raw, codeKeys),
		ReferrerCode: firstString(raw, referrerKeys),
		Name:         firstString(raw, nameKeys),
		Phone:        firstString(raw, phoneKeys),
		City:         firstString(raw, cityKeys),
	}
}

// NormalizeAll normalizes a whole snapshot, preserving input order.
func NormalizeAll(raws []RawRecord) []Record {
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// ParseKind maps a raw kind value onto the two known kinds. Anything that is
// not recognizably a recruiter is a lead.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recruiter", "recrutador":
		return KindRecruiter
	default:
		return KindLead
	}
}

// firstString returns the first non-blank string value among the candidate
// keys, trimmed of surrounding whitespace.
func firstString(raw RawRecord, keys []string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return ""
}

// firstID returns the first parseable integer identifier among the candidate
// keys. JSON decoding delivers numbers as float64, so that shape is accepted
// alongside the integer types and numeric strings.
func firstID(raw RawRecord, keys []string) int64 {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case int64:
			return n
		case int:
			return int64(n)
		case float64:
			return int64(n)
		case string:
			if id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
				return id
			}
		}
	}
	return 0
}
