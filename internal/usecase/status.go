package usecase

import (
	"fmt"

	"pakket-admin/internal/data/entity"
)

// StatusPolicy decides whether a package may move from one status to another.
type StatusPolicy interface {
	Allow(from, to entity.PackageStatus) error
}

// freeStatusPolicy accepts any move within the status domain.
type freeStatusPolicy struct{}

func (freeStatusPolicy) Allow(from, to entity.PackageStatus) error {
	return nil
}

// forwardStatusPolicy accepts a no-op or a single step forward in the lifecycle.
type forwardStatusPolicy struct{}

func (forwardStatusPolicy) Allow(from, to entity.PackageStatus) error {
	fromIdx, toIdx := statusIndex(from), statusIndex(to)
	if fromIdx < 0 || toIdx < 0 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, from, to)
	}
	if toIdx == fromIdx || toIdx == fromIdx+1 {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func NewStatusPolicy(forwardOnly bool) StatusPolicy {
	if forwardOnly {
		return forwardStatusPolicy{}
	}
	return freeStatusPolicy{}
}

func statusIndex(status entity.PackageStatus) int {
	for i, s := range entity.PackageStatuses {
		if s == status {
			return i
		}
	}
	return -1
}
