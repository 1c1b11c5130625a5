package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubmissionStatus string

const (
	StatusPending   SubmissionStatus = "pending"
	StatusCompleted SubmissionStatus = "completed"
)

// swagger:model
type Submission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AssignmentID  string             `bson:"assignment_id" json:"assignment_id"`
	Title         string             `bson:"title" json:"title"`
	Marks         float64            `bson:"marks" json:"marks"`
	StudentEmail  string             `bson:"student_email" json:"student_email"`
	StudentName   string             `bson:"student_name,omitempty" json:"student_name,omitempty"`
	PDFLink       string             `bson:"pdf_link,omitempty" json:"pdf_link,omitempty"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	Status        SubmissionStatus   `bson:"status" json:"status"`
	ObtainedMarks float64            `bson:"obtained_marks" json:"obtained_marks"`
	Feedback      string             `bson:"feedback" json:"feedback"`
	SubmittedAt   time.Time          `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
}

// GradeFields 是 PUT /status-update/:id 覆盖的三个字段
type GradeFields struct {
	Status        SubmissionStatus
	ObtainedMarks float64
	Feedback      string
}

// Completion 提交完成率，派生值不落库
type Completion struct {
	Percentage float64 `json:"percentage"`
	Submitted  int64   `json:"submitted"`
	Total      int64   `json:"total"`
}
