package repository

import (
	"trig_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) FindByID(id uint) (*model.Class, error) {
	var class model.Class
	err := r.DB.First(&class, id).Error
	return &class, err
}

func (r *ClassRepository) FindByJoinCode(code string) (*model.Class, error) {
	var class model.Class
	err := r.DB.Where("join_code = ?", code).First(&class).Error
	return &class, err
}

// FindByTeacher 返回教师的所有班级，含学生与作业
func (r *ClassRepository) FindByTeacher(teacherID uint) ([]model.Class, error) {
	var classes []model.Class
	err := r.DB.
		Preload("Students").
		Preload("Assignments").
		Where("teacher_id = ?", teacherID).
		Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) AddStudent(class *model.Class, student *model.User) error {
	return r.DB.Model(class).Association("Students").Append(student)
}

func (r *ClassRepository) HasStudent(classID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Table("class_students").
		Where("class_id = ? AND user_id = ?", classID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *ClassRepository) CountStudents(classID uint) (int64, error) {
	var count int64
	err := r.DB.Table("class_students").
		Where("class_id = ?", classID).
		Count(&count).Error
	return count, err
}

func (r *ClassRepository) FindStudents(classID uint) ([]model.User, error) {
	var class model.Class
	err := r.DB.Preload("Students").First(&class, classID).Error
	if err != nil {
		return nil, err
	}
	return class.Students, nil
}
