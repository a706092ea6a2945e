package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Service applies the store policies on top of a Repository:
// id and collection validation, and classification of write faults as ErrStorageFailure.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new Service. A nil logger discards output.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// Logger returns the logger the service was built with.
func (s *Service) Logger() *slog.Logger {
	return s.logger
}

// Put upserts a record into a collection.
func (s *Service) Put(ctx context.Context, collection string, rec Record) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	if !IsCollection(collection) {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	if err := s.repo.Put(ctx, collection, rec); err != nil {
		s.logger.Error("failed to save record", "collection", collection, "id", rec.ID, "error", err)
		return storageFailure(err)
	}
	return nil
}

// Get retrieves a record.
func (s *Service) Get(ctx context.Context, collection, id string) (Record, error) {
	if id == "" {
		return Record{}, ErrMissingID
	}
	if !IsCollection(collection) {
		return Record{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return s.repo.Get(ctx, collection, id)
}

// List retrieves all records of a collection.
func (s *Service) List(ctx context.Context, collection string) ([]Record, error) {
	if !IsCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return s.repo.List(ctx, collection)
}

// Delete removes a record. Missing records are ignored.
func (s *Service) Delete(ctx context.Context, collection, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if !IsCollection(collection) {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if err := s.repo.Delete(ctx, collection, id); err != nil {
		s.logger.Error("failed to delete record", "collection", collection, "id", id, "error", err)
		return storageFailure(err)
	}
	return nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// Close releases the repository.
func (s *Service) Close() error {
	return s.repo.Close()
}

func storageFailure(err error) error {
	if errors.Is(err, ErrStorageFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}
