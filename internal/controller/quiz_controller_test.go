package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"trig_quiz_backend/internal/config"
	"trig_quiz_backend/internal/model"
	"trig_quiz_backend/internal/repository"
	"trig_quiz_backend/internal/service"
	"trig_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type memorySessionStore struct {
	values map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{values: make(map[string]string)}
}

func (m *memorySessionStore) Get(_ context.Context, key string) (string, error) {
	val, ok := m.values[key]
	if !ok {
		return "", util.ErrCacheMiss
	}
	return val, nil
}

func (m *memorySessionStore) SetWithTTL(_ context.Context, key string, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memorySessionStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memorySessionStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

type fixedOracle struct{}

func (fixedOracle) Generate() (string, string, []string) {
	return "sin(30°)", "1/2", []string{"1/2", "0", "1", "-1"}
}

type stubAssignments struct {
	assignment *model.Assignment
}

func (s *stubAssignments) FindByID(id uint) (*model.Assignment, error) {
	if s.assignment == nil || s.assignment.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.assignment, nil
}

type stubResults struct {
	created []*model.Result
}

func (s *stubResults) Create(result *model.Result) error {
	s.created = append(s.created, result)
	return nil
}

func (s *stubResults) CountByStudentAndAssignment(uint, uint) (int64, error) {
	return int64(len(s.created)), nil
}

type stubPractices struct{}

func (stubPractices) Create(*model.PracticeRecord) error { return nil }

var _ repository.SessionStore = (*memorySessionStore)(nil)

func newQuizRouter(t *testing.T) (*gin.Engine, *service.QuizService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	assignments := &stubAssignments{
		assignment: &model.Assignment{
			BaseModel:         model.BaseModel{ID: 5},
			ClassID:           1,
			TestName:          "Unit circle",
			NumberOfQuestions: 1,
			TimeToAnswer:      15,
		},
	}

	svc := service.NewQuizService(
		newMemorySessionStore(),
		fixedOracle{},
		assignments,
		&stubResults{},
		stubPractices{},
		&config.Config{},
	)
	ctrl := NewQuizController(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 1, Role: model.Student})
	})
	router.POST("/api/start_homework/:assignmentId", ctrl.StartHomework)
	router.GET("/api/question", ctrl.GetQuestion)
	router.POST("/api/submit_answer", ctrl.SubmitAnswer)
	router.POST("/api/start_practice", ctrl.StartPractice)
	router.GET("/api/practice_question", ctrl.GetPracticeQuestion)
	router.POST("/api/submit_practice_answer", ctrl.SubmitPracticeAnswer)
	router.POST("/api/end_practice", ctrl.EndPractice)

	return router, svc
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return envelope.Data
}

func TestStartHomeworkReturnsTimeLimit(t *testing.T) {
	router, _ := newQuizRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/start_homework/5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeEnvelope(t, w)
	if data["question_time_limit"] != float64(15) {
		t.Fatalf("unexpected time limit: %v", data["question_time_limit"])
	}
}

func TestStartHomeworkUnknownAssignment(t *testing.T) {
	router, _ := newQuizRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/start_homework/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStartHomeworkBadID(t *testing.T) {
	router, _ := newQuizRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/start_homework/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetQuestionBeforeStart(t *testing.T) {
	router, _ := newQuizRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/question", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitAnswerWithoutQuestion(t *testing.T) {
	router, _ := newQuizRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/submit_answer", gin.H{"answer": "1/2"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitAnswerMissingBody(t *testing.T) {
	router, _ := newQuizRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/submit_answer", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHomeworkRoundTrip(t *testing.T) {
	router, _ := newQuizRouter(t)

	if w := doJSON(t, router, http.MethodPost, "/api/start_homework/5", nil); w.Code != http.StatusOK {
		t.Fatalf("start failed: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodGet, "/api/question", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("question failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeEnvelope(t, w)
	if data["question"] != "sin(30°)" {
		t.Fatalf("unexpected question payload: %v", data)
	}
	if _, ok := data["answer"]; ok {
		t.Fatalf("answer leaked to the client: %v", data)
	}

	w = doJSON(t, router, http.MethodPost, "/api/submit_answer", gin.H{"answer": "1/2"})
	if w.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}
	data = decodeEnvelope(t, w)
	if data["is_correct"] != true {
		t.Fatalf("expected is_correct=true, got %v", data)
	}

	// 单题作业，提交后会话即结束
	w = doJSON(t, router, http.MethodGet, "/api/question", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after completion, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPracticeRoundTrip(t *testing.T) {
	router, _ := newQuizRouter(t)

	if w := doJSON(t, router, http.MethodPost, "/api/start_practice", nil); w.Code != http.StatusOK {
		t.Fatalf("start practice failed")
	}

	if w := doJSON(t, router, http.MethodGet, "/api/practice_question", nil); w.Code != http.StatusOK {
		t.Fatalf("practice question failed: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodPost, "/api/submit_practice_answer", gin.H{"answer": "0"})
	if w.Code != http.StatusOK {
		t.Fatalf("submit practice failed: %d %s", w.Code, w.Body.String())
	}
	if data := decodeEnvelope(t, w); data["is_correct"] != false {
		t.Fatalf("expected is_correct=false, got %v", data)
	}

	w = doJSON(t, router, http.MethodPost, "/api/end_practice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("end practice failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeEnvelope(t, w)
	if data["correct_answers"] != float64(0) || data["total_questions"] != float64(1) {
		t.Fatalf("unexpected final counters: %v", data)
	}

	w = doJSON(t, router, http.MethodPost, "/api/end_practice", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second end, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPracticeQuestionBeforeStart(t *testing.T) {
	router, _ := newQuizRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/practice_question", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
