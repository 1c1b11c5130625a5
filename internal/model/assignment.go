package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// swagger:model
type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Difficulty  Difficulty         `bson:"difficulty" json:"difficulty"`
	Description string             `bson:"description" json:"description"`
	Marks       float64            `bson:"marks" json:"marks"`
	Deadline    string             `bson:"deadline" json:"deadline"`
	Photo       string             `bson:"photo" json:"photo"`
	CreatedBy   string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// AssignmentFields 是 PUT /update/:id 覆盖的六个字段
type AssignmentFields struct {
	Title       string
	Difficulty  Difficulty
	Description string
	Marks       float64
	Deadline    string
	Photo       string
}
