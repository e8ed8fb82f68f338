package analysis

import "context"

// Repository port for persisting and querying analysis records
type Repository interface {
	Save(ctx context.Context, r *Record) error
	// Get returns sql.ErrNoRows when the record does not exist.
	Get(ctx context.Context, subject string, id RecordID) (*Record, error)
	// Latest returns nil, nil when the subject has no records yet.
	Latest(ctx context.Context, subject string) (*Record, error)
	Paginate(ctx context.Context, subject string, page, pageSize int) ([]*Record, error)
	Delete(ctx context.Context, subject string, id RecordID) error
}

// ImageStore port for the uploaded scalp photos
type ImageStore interface {
	PutImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
	GetImage(ctx context.Context, key string) ([]byte, string, error)
}
