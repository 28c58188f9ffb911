package repository

import (
	"trig_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) FindByClass(classID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("class_id = ?", classID).Find(&assignments).Error
	return assignments, err
}

// FindForStudent 学生所在全部班级的作业
func (r *AssignmentRepository) FindForStudent(studentID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.
		Joins("JOIN class_students ON class_students.class_id = assignments.class_id").
		Where("class_students.user_id = ?", studentID).
		Order("assignments.hand_in_by_date ASC").
		Find(&assignments).Error
	return assignments, err
}
