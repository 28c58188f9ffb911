package model

import "time"

// PracticeRecord 一次自由练习的最终统计，练习结束时写入
type PracticeRecord struct {
	BaseModel
	StudentID    uint      `gorm:"index;not null" json:"student_id"`
	PracticedAt  time.Time `gorm:"not null" json:"time"`
	CorrectCount int       `gorm:"not null" json:"correct"`
	TotalCount   int       `gorm:"not null" json:"count"`
}

func (PracticeRecord) TableName() string {
	return "practices"
}
