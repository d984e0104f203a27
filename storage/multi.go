package storage

import (
	"sync"

	"vrm-crawler/models"
)

// MultiWriter fans each record out to several sinks. The first write error
// wins; later sinks are skipped for that record.
type MultiWriter struct {
	writers []RecordWriter
}

// NewMultiWriter combines the given sinks into one.
func NewMultiWriter(writers ...RecordWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (m *MultiWriter) Write(rec *models.PropertyRecord) error {
	for _, w := range m.writers {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and returns the first error encountered.
func (m *MultiWriter) Close() error {
	var firstErr error
	for _, w := range m.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Collector retains records in memory for post-run reporting.
type Collector struct {
	mu      sync.Mutex
	records []*models.PropertyRecord
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Write(rec *models.PropertyRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return nil
}

func (c *Collector) Close() error { return nil }

// FetchAll returns the collected records in arrival order.
func (c *Collector) FetchAll() ([]*models.PropertyRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.PropertyRecord, len(c.records))
	copy(out, c.records)
	return out, nil
}
