package repository

import (
	"trig_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(result *model.Result) error {
	return r.DB.Create(result).Error
}

func (r *ResultRepository) CountByStudentAndAssignment(studentID, assignmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Result{}).
		Where("student_id = ? AND assignment_id = ?", studentID, assignmentID).
		Count(&count).Error
	return count, err
}

// MaxCorrectAnswers 学生在某作业上的最佳成绩，无记录时为 0
func (r *ResultRepository) MaxCorrectAnswers(studentID, assignmentID uint) (int, error) {
	var best *int
	err := r.DB.Model(&model.Result{}).
		Where("student_id = ? AND assignment_id = ?", studentID, assignmentID).
		Select("MAX(correct_answers)").
		Scan(&best).Error
	if err != nil || best == nil {
		return 0, err
	}
	return *best, nil
}

func (r *ResultRepository) CountDistinctStudents(assignmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Result{}).
		Where("assignment_id = ?", assignmentID).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}
