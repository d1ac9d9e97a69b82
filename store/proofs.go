package store

import (
	"fmt"

	"finapi/models"
)

func (s *Store) CreateProof(p *models.Proof) error {
	return s.db.Create(p).Error
}

func (s *Store) ProofsByOwner(ownerID uint) ([]models.Proof, error) {
	var proofs []models.Proof
	if err := s.db.Where("owner_id = ?", ownerID).Order("id desc").Limit(100).Find(&proofs).Error; err != nil {
		return nil, err
	}
	return proofs, nil
}

// Proof resolves an upload within the caller's ownership scope.
func (s *Store) Proof(callerID, proofID uint) (*models.Proof, error) {
	var p models.Proof
	if err := s.db.First(&p, proofID).Error; err != nil {
		return nil, fmt.Errorf("proof %d: %w", proofID, ErrNotFound)
	}
	if p.OwnerID != callerID {
		return nil, fmt.Errorf("proof %d: %w", proofID, ErrNotFound)
	}
	return &p, nil
}

// SetProofSuggestion records the OCR outcome for an upload. A nil value with
// a reason marks the pass failed so the retry sweep can find it.
func (s *Store) SetProofSuggestion(proofID uint, value *float64, failedReason string) error {
	updates := map[string]any{
		"suggested_value": value,
		"failed":          value == nil,
		"failed_reason":   failedReason,
	}
	return s.db.Model(&models.Proof{}).Where("id = ?", proofID).Updates(updates).Error
}

// ProofsPendingSuggestion lists uploads with no suggested value yet, for the
// backfill sweep.
func (s *Store) ProofsPendingSuggestion(limit int) ([]models.Proof, error) {
	var proofs []models.Proof
	q := s.db.Where("suggested_value IS NULL")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Order("id asc").Find(&proofs).Error; err != nil {
		return nil, err
	}
	return proofs, nil
}

// ProofByStorePath resolves an upload from its stored path, for the watcher.
func (s *Store) ProofByStorePath(path string) (*models.Proof, error) {
	var p models.Proof
	if err := s.db.Where("store_path = ?", path).First(&p).Error; err != nil {
		return nil, fmt.Errorf("proof at %s: %w", path, ErrNotFound)
	}
	return &p, nil
}
