package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	waLog "go.mau.fi/whatsmeow/util/log"
)

func TestNilWriterIsSafe(t *testing.T) {
	w := NewWriter("", waLog.Noop)
	if w != nil {
		t.Fatalf("empty base dir should return nil writer")
	}
	if w.Enabled() {
		t.Fatalf("nil writer must report disabled")
	}
	if err := w.Write("manual", []Record{{MemberID: "m1"}}); err != nil {
		t.Fatalf("nil writer write should be a no-op, got %v", err)
	}
}

func TestWriteRun(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, waLog.Noop)
	if !w.Enabled() {
		t.Fatalf("expected enabled writer")
	}

	records := []Record{
		{MemberID: "a", Name: "A", Outcome: "sent"},
		{MemberID: "b", Name: "B", Outcome: "failed", Reason: "boom"},
	}
	if err := w.Write("scheduled", records); err != nil {
		t.Fatalf("write: %v", err)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected one journal file, got %d", len(files))
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var run struct {
		Trigger string   `json:"trigger"`
		Sent    int      `json:"sent"`
		Failed  int      `json:"failed"`
		Records []Record `json:"records"`
	}
	if err := json.Unmarshal(data, &run); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if run.Trigger != "scheduled" || run.Sent != 1 || run.Failed != 1 {
		t.Fatalf("unexpected run summary: %+v", run)
	}
	if len(run.Records) != 2 {
		t.Fatalf("expected 2 records got %d", len(run.Records))
	}
}

func TestWriteSkipsEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, waLog.Noop)
	if err := w.Write("manual", nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("empty batch must not create files")
	}
}
