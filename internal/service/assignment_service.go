package service

import (
	"errors"
	"time"
	"trig_quiz_backend/internal/model"
	"trig_quiz_backend/internal/repository"
	"trig_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	ClassRepo      *repository.ClassRepository
	ResultRepo     *repository.ResultRepository
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	classRepo *repository.ClassRepository,
	resultRepo *repository.ResultRepository,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		ClassRepo:      classRepo,
		ResultRepo:     resultRepo,
	}
}

type AssignmentReq struct {
	ClassID           uint      `json:"class_id" binding:"required"`
	TestName          string    `json:"test_name" binding:"required"`
	HandInByDate      time.Time `json:"hand_in_by_date" binding:"required"`
	MultipleAttempts  bool      `json:"multiple_attempts"`
	NumberOfQuestions int       `json:"number_of_questions" binding:"required,min=1"`
	TimeToAnswer      int       `json:"time_to_answer" binding:"required,min=1"`
}

// HomeworkView 学生作业列表条目。CompletedBy 为最佳一次的答对数，
// 未做过时为 0。
type HomeworkView struct {
	ID                uint      `json:"id"`
	TestName          string    `json:"test_name"`
	HandInByDate      time.Time `json:"hand_in_by_date"`
	MultipleAttempts  bool      `json:"multiple_attempts"`
	NumberOfQuestions int       `json:"number_of_questions"`
	TimeToAnswer      int       `json:"time_to_answer"`
	CompletedBy       int       `json:"completed_by"`
}

// AssignmentStats 教师侧的作业完成情况
type AssignmentStats struct {
	Assignment     model.Assignment `json:"assignment"`
	TotalStudents  int64            `json:"total_students"`
	CompletedCount int64            `json:"completed_count"`
	CompletionRate float64          `json:"completion_rate"`
}

// CreateAssignment 为班级布置作业，班级必须属于该教师
func (s *AssignmentService) CreateAssignment(teacherID uint, req AssignmentReq) (*model.Assignment, error) {
	class, err := s.ClassRepo.FindByID(req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	if class.TeacherID != teacherID {
		return nil, util.ErrClassNotFound
	}

	assignment := &model.Assignment{
		ClassID:           req.ClassID,
		TestName:          req.TestName,
		HandInByDate:      req.HandInByDate,
		MultipleAttempts:  req.MultipleAttempts,
		NumberOfQuestions: req.NumberOfQuestions,
		TimeToAnswer:      req.TimeToAnswer,
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListHomeworks 学生所有班级的作业及完成情况
func (s *AssignmentService) ListHomeworks(studentID uint) ([]HomeworkView, error) {
	assignments, err := s.AssignmentRepo.FindForStudent(studentID)
	if err != nil {
		return nil, err
	}

	homeworks := make([]HomeworkView, 0, len(assignments))
	for _, a := range assignments {
		best, err := s.ResultRepo.MaxCorrectAnswers(studentID, a.ID)
		if err != nil {
			return nil, err
		}
		homeworks = append(homeworks, HomeworkView{
			ID:                a.ID,
			TestName:          a.TestName,
			HandInByDate:      a.HandInByDate,
			MultipleAttempts:  a.MultipleAttempts,
			NumberOfQuestions: a.NumberOfQuestions,
			TimeToAnswer:      a.TimeToAnswer,
			CompletedBy:       best,
		})
	}
	return homeworks, nil
}

// ClassStats 班级内每个作业的完成统计
func (s *AssignmentService) ClassStats(teacherID, classID uint) ([]AssignmentStats, error) {
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

	assignments, err := s.AssignmentRepo.FindByClass(classID)
	if err != nil {
		return nil, err
	}

	totalStudents, err := s.ClassRepo.CountStudents(classID)
	if err != nil {
		return nil, err
	}

	stats := make([]AssignmentStats, 0, len(assignments))
	for _, a := range assignments {
		completed, err := s.ResultRepo.CountDistinctStudents(a.ID)
		if err != nil {
			return nil, err
		}
		rate := 0.0
		if totalStudents > 0 {
			rate = float64(completed) / float64(totalStudents)
		}
		stats = append(stats, AssignmentStats{
			Assignment:     a,
			TotalStudents:  totalStudents,
			CompletedCount: completed,
			CompletionRate: rate,
		})
	}
	return stats, nil
}
