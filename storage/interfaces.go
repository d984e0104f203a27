package storage

import "vrm-crawler/models"

// RecordWriter is the sink every state stream feeds. Implementations must
// be safe for Write calls arriving from interleaved streams.
type RecordWriter interface {
	Write(record *models.PropertyRecord) error
	Close() error
}

// RecordReader retrieves previously stored records, used by the summary
// service after a run.
type RecordReader interface {
	FetchAll() ([]*models.PropertyRecord, error)
}
