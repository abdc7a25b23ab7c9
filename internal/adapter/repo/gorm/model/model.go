package model

import "time"

type Episode struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	EpisodeID    string `gorm:"uniqueIndex;size:64"`
	Seed         int64
	NAgents      int32
	GridWidth    int32
	GridHeight   int32
	MaxSteps     int32
	Status       string `gorm:"size:16"`
	ElapsedSteps int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Episode) TableName() string { return "episodes" }

type Transition struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	EpisodeID     string `gorm:"index;size:64"`
	Step          int32
	Actions       []byte `gorm:"type:jsonb"`
	Rewards       []byte `gorm:"type:jsonb"`
	Done          bool
	ResourceCount int32
	OccurredAt    time.Time
}

func (Transition) TableName() string { return "transitions" }

type GridSnapshot struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	EpisodeID string `gorm:"index;size:64"`
	Step      int32
	Width     int32
	Height    int32
	Cells     []byte
	TakenAt   time.Time
}

func (GridSnapshot) TableName() string { return "grid_snapshots" }
