package repository

import (
	"context"
	"course_academy_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

// CreateIfAbsent writes c unless a certificate for the same (user, course) exists.
func (r *CertificateRepository) CreateIfAbsent(ctx context.Context, c *model.Certificate) (bool, error) {
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(c)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*model.Certificate, error) {
	var c model.Certificate
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CertificateRepository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*model.Certificate, error) {
	var c model.Certificate
	err := r.DB.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID string) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("issued_at desc").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) SetDownloadURL(ctx context.Context, id, url string) error {
	res := r.DB.WithContext(ctx).Model(&model.Certificate{}).Where("id = ?", id).Update("download_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPending returns certificates issued before cutoff that still have no artifact.
func (r *CertificateRepository) ListPending(ctx context.Context, cutoff time.Time, limit int) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.WithContext(ctx).
		Where("download_url = ? AND issued_at < ?", "", cutoff).
		Order("issued_at asc").
		Limit(limit).
		Find(&certs).Error
	return certs, err
}
