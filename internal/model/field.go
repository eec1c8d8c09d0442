package model

// Field is a category that tasks can be filed under.
type Field struct {
	ID       string  `json:"id" bson:"_id,omitempty"`
	Text     string  `json:"text" bson:"text"`
	Priority float64 `json:"priority" bson:"priority"`
}

// FieldRef is the projection of a Field attached to task responses.
type FieldRef struct {
	ID   string `json:"id" bson:"_id"`
	Text string `json:"text" bson:"text"`
}
