package bench

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/lennartvogt/treedom/pkg/errors"
)

func TestJSONLStoreAppends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reports.jsonl")
	store := NewJSONLStore(path)

	reports := []*Report{
		{
			RunID:   "run-1",
			Suite:   "smoke",
			Started: time.Now().UTC(),
			Results: []InstanceResult{{Name: "p4", Status: StatusOK, Answer: 2, Feasible: true}},
		},
		{
			RunID:   "run-2",
			Suite:   "smoke",
			Started: time.Now().UTC(),
			Results: []InstanceResult{{Name: "p4", Status: StatusMismatch, Answer: 2, Expected: intPtr(3)}},
		},
	}
	for _, rep := range reports {
		if err := store.Store(ctx, rep); err != nil {
			t.Fatalf("Store error: %v", err)
		}
	}
	if err := store.Close(ctx); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open store file: %v", err)
	}
	defer f.Close()

	var got []Report
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rep Report
		if err := json.Unmarshal(scanner.Bytes(), &rep); err != nil {
			t.Fatalf("line %d is not JSON: %v", len(got)+1, err)
		}
		got = append(got, rep)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan store file: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("stored %d reports, want 2", len(got))
	}
	if got[0].RunID != "run-1" || got[1].RunID != "run-2" {
		t.Errorf("run ids = %q, %q", got[0].RunID, got[1].RunID)
	}
	if got[1].Results[0].Expected == nil || *got[1].Results[0].Expected != 3 {
		t.Error("expected value lost in round trip")
	}
	if got[0].Results[0].Error != "" {
		t.Error("empty error should be omitted")
	}
}

func TestJSONLStoreUnwritablePath(t *testing.T) {
	store := NewJSONLStore(t.TempDir()) // a directory, not a file
	err := store.Store(context.Background(), &Report{RunID: "run-1"})
	if err == nil {
		t.Fatal("Store to a directory path succeeded")
	}
	if code := apperrors.GetCode(err); code != apperrors.ErrCodeStore {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeStore)
	}
}

func TestNewMongoStoreRejectsBadURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), "http://not-mongo:27017")
	if err == nil {
		t.Fatal("NewMongoStore accepted a non-mongodb URI")
	}
	if code := apperrors.GetCode(err); code != apperrors.ErrCodeInvalidInput {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeInvalidInput)
	}
}
