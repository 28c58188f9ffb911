package service

import (
	"time"
	"trig_quiz_backend/internal/model"
)

type PracticeSource interface {
	FindByStudent(studentID uint) ([]model.PracticeRecord, error)
}

type StatisticsService struct {
	Practices PracticeSource

	now func() time.Time
}

func NewStatisticsService(practices PracticeSource) *StatisticsService {
	return &StatisticsService{
		Practices: practices,
		now:       time.Now,
	}
}

type SessionHistoryEntry struct {
	Date     string  `json:"date"`
	Correct  int     `json:"correct"`
	Count    int     `json:"count"`
	Accuracy float64 `json:"accuracy"`
}

type UserStatistics struct {
	PracticeAccuracy float64               `json:"practice_accuracy"`
	TotalSessions    int                   `json:"total_sessions"`
	CorrectAnswers   int                   `json:"correct_answers"`
	RecentActivity   string                `json:"recent_activity"`
	SessionHistory   []SessionHistoryEntry `json:"session_history"`
	LearningStreak   int                   `json:"learning_streak"`
}

// BuildUserStatistics 汇总练习历史：总体准确率、逐次记录、
// 以及以今天或昨天收尾的连续练习天数
func (s *StatisticsService) BuildUserStatistics(userID uint) (*UserStatistics, error) {
	records, err := s.Practices.FindByStudent(userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStatistics{
		TotalSessions:  len(records),
		SessionHistory: make([]SessionHistoryEntry, 0, len(records)),
	}

	totalCount := 0
	for _, rec := range records {
		stats.CorrectAnswers += rec.CorrectCount
		totalCount += rec.TotalCount

		accuracy := 0.0
		if rec.TotalCount > 0 {
			accuracy = float64(rec.CorrectCount) / float64(rec.TotalCount)
		}
		stats.SessionHistory = append(stats.SessionHistory, SessionHistoryEntry{
			Date:     rec.PracticedAt.Format("2006-01-02"),
			Correct:  rec.CorrectCount,
			Count:    rec.TotalCount,
			Accuracy: accuracy,
		})
	}

	if totalCount > 0 {
		stats.PracticeAccuracy = float64(stats.CorrectAnswers) / float64(totalCount)
	}
	if len(records) > 0 {
		stats.RecentActivity = records[0].PracticedAt.Format("2006-01-02")
	}
	stats.LearningStreak = s.learningStreak(records)

	return stats, nil
}

// learningStreak 记录按时间倒序传入。连续天数从今天（或昨天，
// 今天还没练时）往回数，断档即停。
func (s *StatisticsService) learningStreak(records []model.PracticeRecord) int {
	if len(records) == 0 {
		return 0
	}

	days := make(map[string]bool, len(records))
	for _, rec := range records {
		days[rec.PracticedAt.Format("2006-01-02")] = true
	}

	day := s.now()
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
		if !days[day.Format("2006-01-02")] {
			return 0
		}
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
