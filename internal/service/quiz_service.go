package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"trig_quiz_backend/internal/config"
	"trig_quiz_backend/internal/model"
	"trig_quiz_backend/internal/repository"
	"trig_quiz_backend/internal/util"

	"gorm.io/gorm"
)

const (
	testSessionKeyPrefix     = "quiz:test:session:"
	testPendingKeyPrefix     = "quiz:test:pending:"
	practiceSessionKeyPrefix = "quiz:practice:session:"
	practicePendingKeyPrefix = "quiz:practice:pending:"

	defaultTestSessionTTL = 2 * time.Hour
	defaultPracticeTTL    = 24 * time.Hour

	// 待答题的缓存条目比截止时间稍晚过期，权威判定始终是显式的
	// 截止时间比较，TTL 只作兜底
	pendingExpiryGrace = 2 * time.Second
)

// TestSession 一次进行中的限时测验
type TestSession struct {
	UserID             uint `json:"user_id"`
	AssignmentID       uint `json:"assignment_id"`
	QuestionsRemaining int  `json:"questions_remaining"`
	CorrectCount       int  `json:"correct_count"`
	TimeLimitSeconds   int  `json:"time_limit_seconds"`
}

// PendingQuestion 当前已下发、尚未判定的题。每个用户每种模式最多一道，
// 判定（答对、答错或超时）即消耗，不可复用。
type PendingQuestion struct {
	Answer   string    `json:"answer"`
	Deadline time.Time `json:"deadline"`
}

// PracticeSession 不限时的自由练习
type PracticeSession struct {
	UserID       uint `json:"user_id"`
	CorrectCount int  `json:"correct_count"`
	TotalCount   int  `json:"total_count"`
}

// QuestionPayload 下发给客户端的题面，永远不包含正确答案
type QuestionPayload struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type AssignmentSource interface {
	FindByID(id uint) (*model.Assignment, error)
}

type ResultSink interface {
	Create(result *model.Result) error
	CountByStudentAndAssignment(studentID, assignmentID uint) (int64, error)
}

type PracticeSink interface {
	Create(record *model.PracticeRecord) error
}

// QuizService 测验与练习的会话状态机。会话存储是唯一的状态来源，
// 同一用户并发提交时的读-改-写竞争是已知且可接受的窄窗口，
// 这里不做跨请求加锁。
type QuizService struct {
	Store       repository.SessionStore
	Oracle      QuestionOracle
	Assignments AssignmentSource
	Results     ResultSink
	Practices   PracticeSink

	testSessionTTL time.Duration
	practiceTTL    time.Duration
	now            func() time.Time
}

func NewQuizService(
	store repository.SessionStore,
	oracle QuestionOracle,
	assignments AssignmentSource,
	results ResultSink,
	practices PracticeSink,
	cfg *config.Config,
) *QuizService {
	testTTL := defaultTestSessionTTL
	practiceTTL := defaultPracticeTTL
	if cfg != nil {
		if cfg.Quiz.TestSessionTTLMinutes > 0 {
			testTTL = time.Duration(cfg.Quiz.TestSessionTTLMinutes) * time.Minute
		}
		if cfg.Quiz.PracticeSessionTTLHours > 0 {
			practiceTTL = time.Duration(cfg.Quiz.PracticeSessionTTLHours) * time.Hour
		}
	}

	return &QuizService{
		Store:          store,
		Oracle:         oracle,
		Assignments:    assignments,
		Results:        results,
		Practices:      practices,
		testSessionTTL: testTTL,
		practiceTTL:    practiceTTL,
		now:            time.Now,
	}
}

// StartTest 开始一次作业测验，返回每题的作答秒数。
// 重新开始会覆盖该用户此前未完成的测验会话。
func (s *QuizService) StartTest(ctx context.Context, userID, assignmentID uint) (int, error) {
	assignment, err := s.Assignments.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrAssignmentNotFound
		}
		return 0, err
	}

	if !assignment.MultipleAttempts {
		attempts, err := s.Results.CountByStudentAndAssignment(userID, assignment.ID)
		if err != nil {
			return 0, err
		}
		if attempts > 0 {
			return 0, util.ErrAttemptUsed
		}
	}

	session := TestSession{
		UserID:             userID,
		AssignmentID:       assignment.ID,
		QuestionsRemaining: assignment.NumberOfQuestions,
		CorrectCount:       0,
		TimeLimitSeconds:   assignment.TimeToAnswer,
	}

	if err := s.putJSON(ctx, testSessionKey(userID), session, s.testSessionTTL); err != nil {
		return 0, err
	}
	if err := s.Store.Delete(ctx, testPendingKey(userID)); err != nil {
		return 0, err
	}

	return assignment.TimeToAnswer, nil
}

// IssueQuestion 下发一道限时题。新题会顶替掉尚未判定的旧题。
func (s *QuizService) IssueQuestion(ctx context.Context, userID uint) (*QuestionPayload, error) {
	var session TestSession
	if err := s.getJSON(ctx, testSessionKey(userID), &session); err != nil {
		if errors.Is(err, util.ErrCacheMiss) {
			return nil, util.ErrTestNotStarted
		}
		return nil, err
	}

	question, answer, options := s.Oracle.Generate()

	limit := time.Duration(session.TimeLimitSeconds) * time.Second
	pending := PendingQuestion{
		Answer:   answer,
		Deadline: s.now().Add(limit),
	}
	if err := s.putJSON(ctx, testPendingKey(userID), pending, limit+pendingExpiryGrace); err != nil {
		return nil, err
	}

	return &QuestionPayload{Question: question, Options: options}, nil
}

// SubmitAnswer 判定当前题。题在判定前先被消耗，重复提交同一道题
// 会因没有待答题而失败。
func (s *QuizService) SubmitAnswer(ctx context.Context, userID uint, submitted string) (bool, error) {
	var pending PendingQuestion
	if err := s.getJSON(ctx, testPendingKey(userID), &pending); err != nil {
		if errors.Is(err, util.ErrCacheMiss) {
			return false, util.ErrNoActiveQuestion
		}
		return false, err
	}

	if err := s.Store.Delete(ctx, testPendingKey(userID)); err != nil {
		return false, err
	}

	if s.now().After(pending.Deadline) {
		return false, util.ErrQuestionExpired
	}

	var session TestSession
	if err := s.getJSON(ctx, testSessionKey(userID), &session); err != nil {
		if errors.Is(err, util.ErrCacheMiss) {
			return false, util.ErrTestNotStarted
		}
		return false, err
	}

	// 答案按原样精确比较，不做任何规范化
	correct := submitted == pending.Answer
	if correct {
		session.CorrectCount++
	}
	session.QuestionsRemaining--

	if session.QuestionsRemaining <= 0 {
		result := &model.Result{
			StudentID:      userID,
			AssignmentID:   session.AssignmentID,
			CompletedAt:    s.now(),
			CorrectAnswers: session.CorrectCount,
		}
		if err := s.Results.Create(result); err != nil {
			return correct, err
		}
		if err := s.Store.Delete(ctx, testSessionKey(userID)); err != nil {
			return correct, err
		}
		return correct, nil
	}

	if err := s.putJSON(ctx, testSessionKey(userID), session, s.testSessionTTL); err != nil {
		return correct, err
	}
	return correct, nil
}

// StartPractice 开始自由练习，覆盖此前未结束的练习状态
func (s *QuizService) StartPractice(ctx context.Context, userID uint) error {
	session := PracticeSession{UserID: userID}
	if err := s.putJSON(ctx, practiceSessionKey(userID), session, s.practiceTTL); err != nil {
		return err
	}
	return s.Store.Delete(ctx, practicePendingKey(userID))
}

// IssuePracticeQuestion 下发一道不限时的练习题
func (s *QuizService) IssuePracticeQuestion(ctx context.Context, userID uint) (*QuestionPayload, error) {
	exists, err := s.Store.Exists(ctx, practiceSessionKey(userID))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrPracticeNotStarted
	}

	question, answer, options := s.Oracle.Generate()

	pending := PendingQuestion{Answer: answer}
	if err := s.putJSON(ctx, practicePendingKey(userID), pending, s.practiceTTL); err != nil {
		return nil, err
	}

	return &QuestionPayload{Question: question, Options: options}, nil
}

// SubmitPracticeAnswer 判定练习题并累计计数，不结束练习
func (s *QuizService) SubmitPracticeAnswer(ctx context.Context, userID uint, submitted string) (bool, error) {
	var session PracticeSession
	if err := s.getJSON(ctx, practiceSessionKey(userID), &session); err != nil {
		if errors.Is(err, util.ErrCacheMiss) {
			return false, util.ErrPracticeNotStarted
		}
		return false, err
	}

	var pending PendingQuestion
	if err := s.getJSON(ctx, practicePendingKey(userID), &pending); err != nil {
		if errors.Is(err, util.ErrCacheMiss) {
			return false, util.ErrNoActiveQuestion
		}
		return false, err
	}

	if err := s.Store.Delete(ctx, practicePendingKey(userID)); err != nil {
		return false, err
	}

	correct := submitted == pending.Answer
	session.TotalCount++
	if correct {
		session.CorrectCount++
	}

	if err := s.putJSON(ctx, practiceSessionKey(userID), session, s.practiceTTL); err != nil {
		return correct, err
	}
	return correct, nil
}

// EndPractice 结束练习：落库一条练习记录，清掉会话状态，返回最终计数
func (s *QuizService) EndPractice(ctx context.Context, userID uint) (correct int, total int, err error) {
	var session PracticeSession
	if err := s.getJSON(ctx, practiceSessionKey(userID), &session); err != nil {
		if errors.Is(err, util.ErrCacheMiss) {
			return 0, 0, util.ErrPracticeNotStarted
		}
		return 0, 0, err
	}

	record := &model.PracticeRecord{
		StudentID:    userID,
		PracticedAt:  s.now(),
		CorrectCount: session.CorrectCount,
		TotalCount:   session.TotalCount,
	}
	if err := s.Practices.Create(record); err != nil {
		return 0, 0, err
	}

	if err := s.Store.Delete(ctx, practiceSessionKey(userID), practicePendingKey(userID)); err != nil {
		return 0, 0, err
	}

	return session.CorrectCount, session.TotalCount, nil
}

func (s *QuizService) getJSON(ctx context.Context, key string, out interface{}) error {
	raw, err := s.Store.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

func (s *QuizService) putJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Store.SetWithTTL(ctx, key, string(raw), ttl)
}

func testSessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", testSessionKeyPrefix, userID)
}

func testPendingKey(userID uint) string {
	return fmt.Sprintf("%s%d", testPendingKeyPrefix, userID)
}

func practiceSessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", practiceSessionKeyPrefix, userID)
}

func practicePendingKey(userID uint) string {
	return fmt.Sprintf("%s%d", practicePendingKeyPrefix, userID)
}
