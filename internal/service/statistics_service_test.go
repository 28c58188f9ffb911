package service

import (
	"testing"
	"time"
	"trig_quiz_backend/internal/model"
)

type fakePracticeSource struct {
	records []model.PracticeRecord
}

func (f *fakePracticeSource) FindByStudent(_ uint) ([]model.PracticeRecord, error) {
	return f.records, nil
}

func practiceRecord(at time.Time, correct, total int) model.PracticeRecord {
	return model.PracticeRecord{
		StudentID:    1,
		PracticedAt:  at,
		CorrectCount: correct,
		TotalCount:   total,
	}
}

func newStatsService(records []model.PracticeRecord, now time.Time) *StatisticsService {
	svc := NewStatisticsService(&fakePracticeSource{records: records})
	svc.now = func() time.Time { return now }
	return svc
}

func TestBuildUserStatisticsEmpty(t *testing.T) {
	svc := newStatsService(nil, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	stats, err := svc.BuildUserStatistics(1)
	if err != nil {
		t.Fatalf("BuildUserStatistics failed: %v", err)
	}

	if stats.TotalSessions != 0 || stats.CorrectAnswers != 0 || stats.LearningStreak != 0 {
		t.Fatalf("expected empty statistics, got %+v", stats)
	}
	if stats.PracticeAccuracy != 0 {
		t.Fatalf("expected zero accuracy, got %v", stats.PracticeAccuracy)
	}
	if len(stats.SessionHistory) != 0 {
		t.Fatalf("expected empty history, got %v", stats.SessionHistory)
	}
}

func TestBuildUserStatisticsAggregates(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// 仓库按时间倒序返回
	records := []model.PracticeRecord{
		practiceRecord(now.Add(-time.Hour), 8, 10),
		practiceRecord(now.AddDate(0, 0, -1), 2, 10),
	}

	svc := newStatsService(records, now)
	stats, err := svc.BuildUserStatistics(1)
	if err != nil {
		t.Fatalf("BuildUserStatistics failed: %v", err)
	}

	if stats.TotalSessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", stats.TotalSessions)
	}
	if stats.CorrectAnswers != 10 {
		t.Fatalf("expected 10 correct answers, got %d", stats.CorrectAnswers)
	}
	if stats.PracticeAccuracy != 0.5 {
		t.Fatalf("expected accuracy 0.5, got %v", stats.PracticeAccuracy)
	}
	if stats.RecentActivity != "2025-03-10" {
		t.Fatalf("unexpected recent activity: %q", stats.RecentActivity)
	}

	if len(stats.SessionHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(stats.SessionHistory))
	}
	if stats.SessionHistory[0].Accuracy != 0.8 {
		t.Fatalf("unexpected first entry accuracy: %v", stats.SessionHistory[0].Accuracy)
	}
}

func TestLearningStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"today and two days before", []int{0, -1, -2}, 3},
		{"starts yesterday", []int{-1, -2}, 2},
		{"gap breaks streak", []int{0, -2, -3}, 1},
		{"only older records", []int{-3, -4}, 0},
		{"same day counted once", []int{0, 0, -1}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := make([]model.PracticeRecord, 0, len(tc.offsets))
			for _, off := range tc.offsets {
				records = append(records, practiceRecord(now.AddDate(0, 0, off), 1, 2))
			}

			svc := newStatsService(records, now)
			stats, err := svc.BuildUserStatistics(1)
			if err != nil {
				t.Fatalf("BuildUserStatistics failed: %v", err)
			}
			if stats.LearningStreak != tc.want {
				t.Fatalf("expected streak %d, got %d", tc.want, stats.LearningStreak)
			}
		})
	}
}
