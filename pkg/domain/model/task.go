package model

// TaskMatch is a tracker task looked up by identifier
type TaskMatch struct {
	ID   string
	Name string
}
