package services

import (
	"context"
	"github.com/maxaizer/intern-match/internal/logger"
	"github.com/maxaizer/intern-match/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("already applied")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrAIMatchTimeout       = errors.New("ai match timed out")
	ErrAIMatchMalformed     = errors.New("ai match returned malformed output")
	ErrStorageFailure       = errors.New("storage failure")
)

var kinds = []error{
	ErrValidation, ErrNotFound, ErrDuplicateApplication, ErrInvalidStatus,
	ErrAIMatchTimeout, ErrAIMatchMalformed, ErrStorageFailure,
}

// IsRetryable reports whether the failure came from the scoring collaborator
// and the same request may succeed later.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrAIMatchTimeout) || errors.Is(err, ErrAIMatchMalformed)
}

// Kind returns the taxonomy error err belongs to, or ErrStorageFailure for
// anything unclassified.
func Kind(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrStorageFailure
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string { return e.kind.Error() + ": " + e.cause.Error() }

func (e *kindError) Is(target error) bool { return target == e.kind }

func (e *kindError) Unwrap() error { return e.cause }

// withKind tags cause with a taxonomy error while keeping cause in the chain,
// so both errors.Is(err, kind) and errors.Is(err, cause) hold.
func withKind(kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &kindError{kind: kind, cause: cause}
}

// classify leaves taxonomy errors as they are and tags anything else as a
// storage failure, logging it once.
func classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("%s: %v", msg, err)
	return withKind(ErrStorageFailure, errors.Wrap(err, msg))
}

// notFound maps a repository miss to ErrNotFound, keeping the message.
func notFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return withKind(ErrNotFound, err)
	}
	return err
}
