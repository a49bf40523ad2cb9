package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// Record captures the outcome of one reminder dispatch attempt.
type Record struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Outcome  string `json:"outcome"` // sent | skipped | failed
	Reason   string `json:"reason,omitempty"`
}

// Writer persists reminder run outcomes as JSON files on disk, one file per
// run under baseDir/<yyyymmdd>/.
type Writer struct {
	baseDir string
	log     waLog.Logger
}

// NewWriter returns nil when baseDir is empty; a nil Writer is safe to use
// and writes nothing.
func NewWriter(baseDir string, log waLog.Logger) *Writer {
	base := strings.TrimSpace(baseDir)
	if base == "" {
		return nil
	}
	return &Writer{baseDir: filepath.Clean(base), log: log}
}

func (w *Writer) Enabled() bool {
	return w != nil && w.baseDir != ""
}

// Write stores one reminder run. Failures are returned so the caller can log
// them; they must never abort the run itself.
func (w *Writer) Write(trigger string, records []Record) error {
	if !w.Enabled() || len(records) == 0 {
		return nil
	}

	ts := time.Now().UTC()
	dir := filepath.Join(w.baseDir, ts.Format("20060102"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	fileName := fmt.Sprintf("%s-%s.json", ts.Format("150405Z"), uuid.NewString())
	path := filepath.Join(dir, fileName)

	sent, skipped, failed := 0, 0, 0
	for _, r := range records {
		switch r.Outcome {
		case "sent":
			sent++
		case "skipped":
			skipped++
		default:
			failed++
		}
	}

	run := map[string]any{
		"trigger":    trigger,
		"started_at": ts.Format(time.RFC3339Nano),
		"sent":       sent,
		"skipped":    skipped,
		"failed":     failed,
		"records":    records,
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal run: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if w.log != nil {
		w.log.Debugf("journal written path=%s sent=%d skipped=%d failed=%d", path, sent, skipped, failed)
	}
	return nil
}
