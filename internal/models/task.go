package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	RecordID    string     `gorm:"not null;index" json:"record_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'To Do'" json:"status"`
	AssignedTo  *string    `gorm:"index" json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Record   Record `gorm:"foreignKey:RecordID" json:"-"`
	Assignee *User  `gorm:"foreignKey:AssignedTo" json:"-"`
}

type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	TaskID    string    `gorm:"not null;index" json:"task_id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
