package dto

import "github.com/noah-isme/scolarite-api/internal/models"

// SnapshotFailure reports a student whose snapshot could not be regenerated.
type SnapshotFailure struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// ClassSnapshotResult lists per-student outcomes of a class regeneration.
type ClassSnapshotResult struct {
	ClassID   string                  `json:"class_id"`
	SessionID string                  `json:"session_id"`
	Total     int                     `json:"total"`
	Snapshots []models.ResultSnapshot `json:"snapshots"`
	Failures  []SnapshotFailure       `json:"failures"`
}
