package models

// Employee lifecycle event types.
const (
	EmployeeCreated       = "created"
	EmployeeUpdated       = "updated"
	EmployeeDeleted       = "deleted"
	EmployeePhotoUploaded = "photo_uploaded"
)

// EmployeeEvent is published to Kafka after every successful employee write.
type EmployeeEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	EmployeeID string `json:"employee_id"`
	Actor      string `json:"actor"`
	Timestamp  int64  `json:"timestamp"`
}
