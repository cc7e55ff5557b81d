package models

import "gorm.io/gorm"

type Task struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"size:2000"`
	Status      string `gorm:"size:20;not null;default:TODO;index"`
	Priority    string `gorm:"size:20;not null;default:MEDIUM"`
	Position    int    `gorm:"not null;default:0"`
	AssigneeID  *uint  `gorm:"index"`
	CreatedBy   uint   `gorm:"not null;index"`
}
