package model

import "time"

// Assignment 班级布置的限时测验。TimeToAnswer 为每道题的作答秒数。
type Assignment struct {
	BaseModel
	ClassID           uint      `gorm:"index;not null" json:"class_id"`
	TestName          string    `gorm:"size:200;not null" json:"test_name"`
	HandInByDate      time.Time `gorm:"not null" json:"hand_in_by_date"`
	MultipleAttempts  bool      `gorm:"default:false" json:"multiple_attempts"`
	NumberOfQuestions int       `gorm:"not null" json:"number_of_questions"`
	TimeToAnswer      int       `gorm:"not null" json:"time_to_answer"`
}

func (Assignment) TableName() string {
	return "assignments"
}
