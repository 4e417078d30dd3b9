package document

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

type Repository interface {
	Create(d *Document) error
	// FindOwned returns the document only when it belongs to userID.
	FindOwned(id, userID uuid.UUID) (*Document, error)
	ListByUser(userID uuid.UUID) ([]*Document, error)
	UpdateStatus(id uuid.UUID, status Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(d *Document) error {
	return r.db.Create(d).Error
}

func (r *repository) FindOwned(id, userID uuid.UUID) (*Document, error) {
	var d Document
	err := r.db.
		Preload("Topics").
		First(&d, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) ListByUser(userID uuid.UUID) ([]*Document, error) {
	var docs []*Document
	if err := r.db.
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repository) UpdateStatus(id uuid.UUID, status Status) error {
	return r.db.Model(&Document{}).
		Where("id = ?", id).
		Update("status", status).Error
}
