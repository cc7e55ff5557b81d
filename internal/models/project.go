package models

import "gorm.io/gorm"

// Project rows reference their owner by id only; members and tasks are
// reached through explicit store queries, never through embedded relations.
type Project struct {
	gorm.Model

	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	OwnerID     uint   `gorm:"not null;index"`
}
