package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/referralworks/refnet/pkg/record"
)

func writeSnapshotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSnapshot_NormalizesRawPayloads(t *testing.T) {
	path := writeSnapshotFile(t, `[
		{"id": 1, "type": "recrutador", "referral_code": "X7", "full_name": "Diego"},
		{"lead_id": "2", "indicated_by": "x7", "whatsapp": "+5584999990000"}
	]`)

	snap, err := NewFile(path).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("got %d records, want 2", len(snap))
	}
	if snap[0].Kind != record.KindRecruiter || snap[0].Code != "X7" || snap[0].Name != "Diego" {
		t.Errorf("recruiter not normalized: %+v", snap[0])
	}
	if snap[1].ID != 2 || snap[1].ReferrerCode != "x7" || snap[1].Phone != "+5584999990000" {
		t.Errorf("lead alternates not normalized: %+v", snap[1])
	}
}

func TestFileSnapshot_RereadsOnEveryCall(t *testing.T) {
	path := writeSnapshotFile(t, `[{"id": 1}]`)
	src := NewFile(path)

	first, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d records, want 1", len(first))
	}

	if err := os.WriteFile(path, []byte(`[{"id": 1}, {"id": 2}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(second) != 2 {
		t.Errorf("replaced file not picked up: got %d records", len(second))
	}
}

func TestFileSnapshot_Errors(t *testing.T) {
	if _, err := NewFile("/nonexistent/records.json").Snapshot(context.Background()); err == nil {
		t.Error("missing file should fail")
	}

	path := writeSnapshotFile(t, `{"not": "an array"}`)
	if _, err := NewFile(path).Snapshot(context.Background()); err == nil {
		t.Error("malformed payload should fail")
	}
}
