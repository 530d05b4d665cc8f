// Package domain holds DTOs for labeling http and service contracts
package domain

import "time"

// SubmitInput is one annotator submit for the item at Item
// Labels outside the session label set are dropped, an empty list stores an empty target
type SubmitInput struct {
	Item   int      `json:"item"   validate:"gte=0"               example:"0"`
	Labels []string `json:"labels" validate:"max=256,dive,label" example:"positive"`
}

// ItemView is the paragraph awaiting a submission
type ItemView struct {
	Index   int      `json:"index"   example:"0"`
	Number  int      `json:"number"  example:"1"`
	Lines   []string `json:"lines"`
	Display string   `json:"display" example:"1: hello"`
}

// EntryView is one accumulated submission as shown on the result table
type EntryView struct {
	Target  string `json:"target"  example:"positive"`
	Content string `json:"content" example:"1: hello"`
}

// SessionView is a point in time view of the labeling session
type SessionView struct {
	ID          string      `json:"id"     example:"3b0f7c6e-8f3b-4e0c-9d55-0a4a2c3f5e11"`
	Phase       string      `json:"phase"  example:"ACTIVE"`
	Reason      string      `json:"reason,omitempty" example:"exhausted"`
	Cursor      int         `json:"cursor" example:"0"`
	Total       int         `json:"total"  example:"10"`
	Stored      int         `json:"stored" example:"4"`
	Labels      []string    `json:"labels"`
	Item        *ItemView   `json:"item,omitempty"`
	Accumulated []EntryView `json:"accumulated"`

	// Exports lists the artifact names ready for download, set once COMPLETE
	Exports      []string `json:"exports,omitempty"`
	ExportError  string   `json:"export_error,omitempty"`
	CleanupError string   `json:"cleanup_error,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Active reports whether the session still accepts submissions
func (v SessionView) Active() bool { return v.Item != nil }

// Artifact is one downloadable export
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}
