package parsefailures

import (
	"context"
)

// Repository defines persistence for parse failures
type Repository interface {
	Save(ctx context.Context, f *ParseFailure) error
	ListBySubject(ctx context.Context, subject string, limit int) ([]*ParseFailure, error)
}
