package repository

import (
	"trig_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type PracticeRepository struct {
	DB *gorm.DB
}

func NewPracticeRepository(db *gorm.DB) *PracticeRepository {
	return &PracticeRepository{DB: db}
}

func (r *PracticeRepository) Create(record *model.PracticeRecord) error {
	return r.DB.Create(record).Error
}

func (r *PracticeRepository) FindByStudent(studentID uint) ([]model.PracticeRecord, error) {
	var records []model.PracticeRecord
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("practiced_at DESC").
		Find(&records).Error
	return records, err
}
