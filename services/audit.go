package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"contact-management/logger"
	"contact-management/model"
)

// AuditLogger records deleted contacts after the transaction commits. Every
// failure here is logged and swallowed; a delete must never fail because its
// audit trail could not be written.
type AuditLogger struct {
	Path   string
	Bucket string
	Log    *logger.Logger

	mu sync.Mutex
}

type auditRecord struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Data      model.Contact `json:"data"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewAuditLogger(log *logger.Logger) *AuditLogger {
	return &AuditLogger{
		Path:   filepath.Join("data-logs", "delete-logs.json"),
		Bucket: os.Getenv("BUCKET_NAME"),
		Log:    log.With("component", "AuditLogger"),
	}
}

// LogDelete appends the record to the local log file and, when a bucket is
// configured, uploads a copy to S3.
func (a *AuditLogger) LogDelete(contact model.Contact) {
	record := auditRecord{
		ID:        uuid.NewString(),
		Type:      "delete",
		Data:      contact,
		Timestamp: time.Now().UTC(),
	}

	if err := a.appendLocal(record); err != nil {
		a.Log.Warn("failed to write delete log", "error", err)
	}
	if a.Bucket != "" {
		if err := a.putObject(record); err != nil {
			a.Log.Warn("failed to upload delete log", "error", err)
		}
	}
}

// appendLocal rewrites the whole log file; the lock keeps concurrent deletes
// from losing each other's records in the read-modify-write.
func (a *AuditLogger) appendLocal(record auditRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var records []auditRecord
	if content, err := os.ReadFile(a.Path); err == nil && len(content) > 0 {
		// A corrupt log file starts over rather than blocking deletes.
		_ = json.Unmarshal(content, &records)
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(a.Path, data, 0o644)
}

func (a *AuditLogger) putObject(record auditRecord) error {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("delete-logs/%s.json", record.ID)
	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      &a.Bucket,
		Key:         &key,
		ContentType: aws.String("application/json"),
		Body:        strings.NewReader(string(data)),
	})
	return err
}
