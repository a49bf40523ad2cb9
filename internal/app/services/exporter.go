package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/domain/member"
	"github.com/gymtrack/gymtrack-api/pkg/storage"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// ExportResult carries the rendered CSV plus, when object storage is
// configured, the URL of the uploaded copy.
type ExportResult struct {
	Filename string
	Data     []byte
	URL      string
}

// Exporter renders the member roster as CSV. When a storage service is
// wired it also uploads the file and returns its URL.
type Exporter struct {
	repo    repositories.MemberRepository
	storage storage.Service
	log     waLog.Logger
	now     func() time.Time
}

func NewExporter(repo repositories.MemberRepository, store storage.Service, log waLog.Logger) *Exporter {
	return &Exporter{
		repo:    repo,
		storage: store,
		log:     log.Sub("Exporter"),
		now:     time.Now,
	}
}

func (e *Exporter) ExportMembers(ctx context.Context) (*ExportResult, error) {
	members, err := e.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "name", "phone", "plan", "status", "payment", "amount", "method", "startDate", "dueDate", "paymentDate"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range members {
		if err := w.Write(memberRow(m)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	result := &ExportResult{
		Filename: fmt.Sprintf("members-%s.csv", e.now().UTC().Format("20060102-150405")),
		Data:     buf.Bytes(),
	}

	if e.storage != nil {
		url, err := e.storage.PutObject(ctx, storage.UploadInput{
			Key:                "exports/" + result.Filename,
			ContentType:        "text/csv",
			ContentDisposition: fmt.Sprintf("attachment; filename=%q", result.Filename),
			Body:               bytes.NewReader(result.Data),
			Size:               int64(len(result.Data)),
		})
		if err != nil {
			e.log.Warnf("upload export: %v", err)
		} else {
			result.URL = url
		}
	}

	return result, nil
}

func memberRow(m *member.Member) []string {
	return []string{
		string(m.ID),
		m.Name,
		m.Phone,
		m.Plan,
		string(m.Status),
		string(m.Payment),
		strconv.FormatFloat(m.Amount, 'f', 2, 64),
		m.Method,
		formatDatePtr(m.StartDate),
		formatDatePtr(m.DueDate),
		formatDatePtr(m.PaymentDate),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
