package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
)

var periodPattern = regexp.MustCompile(`^\d{6}$`)

type sequenceService struct {
	BaseService
	repo portsrepo.SequenceRepository
}

// NewSequenceService creates the document number allocator.
func NewSequenceService(repo portsrepo.SequenceRepository) portssvc.SequenceSvc {
	return &sequenceService{repo: repo}
}

var _ portssvc.SequenceSvc = (*sequenceService)(nil)

// Next returns the following document number for prefix and period, e.g. JE-202401-0007.
func (s *sequenceService) Next(ctx context.Context, prefix, period string) (string, error) {
	if prefix == "" {
		return "", apperrors.NewValidationError("prefix", "is required")
	}
	if !periodPattern.MatchString(period) {
		return "", apperrors.NewValidationError("period", "must be formatted as yyyyMM")
	}

	n, err := s.repo.NextValue(ctx, prefix, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate document number",
			slog.String("prefix", prefix), slog.String("period", period))
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, period, n), nil
}
