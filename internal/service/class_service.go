package service

import (
	"errors"
	"trig_quiz_backend/internal/model"
	"trig_quiz_backend/internal/repository"
	"trig_quiz_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassService struct {
	ClassRepo *repository.ClassRepository
	UserRepo  *repository.UserRepository
}

func NewClassService(classRepo *repository.ClassRepository, userRepo *repository.UserRepository) *ClassService {
	return &ClassService{
		ClassRepo: classRepo,
		UserRepo:  userRepo,
	}
}

func (s *ClassService) CreateClass(teacherID uint, className string) (*model.Class, error) {
	class := &model.Class{
		TeacherID: teacherID,
		ClassName: className,
		JoinCode:  uuid.New().String(),
	}
	if err := s.ClassRepo.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) ListByTeacher(teacherID uint) ([]model.Class, error) {
	return s.ClassRepo.FindByTeacher(teacherID)
}

// JoinLink 返回班级的邀请码，仅班主任可见
func (s *ClassService) JoinLink(teacherID, classID uint) (string, error) {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrClassNotFound
		}
		return "", err
	}
	if class.TeacherID != teacherID {
		return "", util.ErrClassNotFound
	}
	return class.JoinCode, nil
}

// JoinByCode 学生凭邀请码入班。重复加入不报错。
func (s *ClassService) JoinByCode(studentID uint, code string) (*model.Class, error) {
	class, err := s.ClassRepo.FindByJoinCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}

	member, err := s.ClassRepo.HasStudent(class.ID, studentID)
	if err != nil {
		return nil, err
	}
	if member {
		return class, nil
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	if err := s.ClassRepo.AddStudent(class, student); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) ListStudents(teacherID, classID uint) ([]model.User, error) {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	if class.TeacherID != teacherID {
		return nil, util.ErrClassNotFound
	}
	return s.ClassRepo.FindStudents(classID)
}
