package storage

import (
	"errors"
	"testing"

	"vrm-crawler/models"
)

type countingSink struct {
	writes int
	closed bool
	err    error
}

func (c *countingSink) Write(*models.PropertyRecord) error {
	if c.err != nil {
		return c.err
	}
	c.writes++
	return nil
}

func (c *countingSink) Close() error {
	c.closed = true
	return nil
}

func TestMultiWriterFansOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := NewMultiWriter(a, b)

	if err := m.Write(&models.PropertyRecord{State: "VA"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if a.writes != 1 || b.writes != 1 {
		t.Errorf("writes: a=%d b=%d, want 1 each", a.writes, b.writes)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("close did not reach all sinks")
	}
}

func TestMultiWriterPropagatesFirstError(t *testing.T) {
	a := &countingSink{err: errors.New("disk full")}
	b := &countingSink{}
	m := NewMultiWriter(a, b)

	if err := m.Write(&models.PropertyRecord{State: "VA"}); err == nil {
		t.Fatal("expected write error")
	}
	if b.writes != 0 {
		t.Errorf("later sink written after error: %d", b.writes)
	}
}

func TestCollectorRetainsOrder(t *testing.T) {
	c := NewCollector()
	_ = c.Write(&models.PropertyRecord{State: "VA", Name: "A"})
	_ = c.Write(&models.PropertyRecord{State: "TX", Name: "B"})

	records, err := c.FetchAll()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 2 || records[0].Name != "A" || records[1].Name != "B" {
		t.Errorf("unexpected records: %+v", records)
	}
}
