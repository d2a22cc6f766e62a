package models

import "time"

// AuditStatus tells whether an audited operation went through.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "SUCCESS"
	AuditFailure AuditStatus = "FAILURE"
)

// AuditLog records one write made through the point of sale.
type AuditLog struct {
	ID           string         `bson:"id" json:"id"`
	UserID       string         `bson:"userId" json:"userId"`
	Role         Role           `bson:"role" json:"role"`
	Action       string         `bson:"action" json:"action"`
	Resource     string         `bson:"resource" json:"resource"`
	ResourceID   string         `bson:"resourceId,omitempty" json:"resourceId,omitempty"`
	Changes      map[string]any `bson:"changes,omitempty" json:"changes,omitempty"`
	IPAddress    string         `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	Timestamp    time.Time      `bson:"timestamp" json:"timestamp"`
	Status       AuditStatus    `bson:"status" json:"status"`
	ErrorMessage string         `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
}
