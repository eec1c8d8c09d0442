package model

import "time"

// Task is a to-do item. FieldIDs references Field documents by id; the
// references are advisory and only checked when a Field is deleted.
type Task struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	Text     string    `json:"text" bson:"text"`
	FieldIDs []string  `json:"fieldIDs" bson:"fieldIDs"`
	IsDone   bool      `json:"isDone" bson:"isDone"`
	Deadline time.Time `json:"deadline" bson:"deadline"`
}

// TaskWithFields is the single-task GET shape: the task plus the id/text
// projection of every Field it references.
type TaskWithFields struct {
	Task
	Fields []FieldRef `json:"fields"`
}
