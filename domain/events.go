package domain

import "time"

// ProgressEvent is published to subscribers after every accepted clip
// transition. Progress is a coarse 0..1 hint; Terminal marks the last event
// of a run.
type ProgressEvent struct {
	ClipID   string     `json:"clip_id"`
	Stage    string     `json:"stage"`
	Status   ClipStatus `json:"status"`
	Detail   string     `json:"detail"`
	Progress float64    `json:"progress"`
	Terminal bool       `json:"terminal"`
	At       time.Time  `json:"at"`
}
