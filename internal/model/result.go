package model

import "time"

// Result 一次已完成的测验记录，完成即写入，之后不再修改
type Result struct {
	BaseModel
	StudentID      uint      `gorm:"index;not null" json:"student_id"`
	AssignmentID   uint      `gorm:"index;not null" json:"test_id"`
	CompletedAt    time.Time `gorm:"not null" json:"completed_at"`
	CorrectAnswers int       `gorm:"not null" json:"correct_answers"`
}

func (Result) TableName() string {
	return "results"
}
