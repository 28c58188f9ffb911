package model

type Class struct {
	BaseModel
	TeacherID uint   `gorm:"index;not null" json:"teacher_id"`
	ClassName string `gorm:"size:100;not null" json:"cl_name"`
	JoinCode  string `gorm:"size:36;uniqueIndex;not null" json:"-"`

	Students    []User       `gorm:"many2many:class_students" json:"students,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:ClassID" json:"assignments,omitempty"`
}

func (Class) TableName() string {
	return "classes"
}
