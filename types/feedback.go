package types

import "time"

// Feedback type values accepted from visitors.
const (
	FeedbackTypePraise     = "praise"
	FeedbackTypeComplaint  = "complaint"
	FeedbackTypeSuggestion = "suggestion"
)

// Lifecycle status values. Records start as pending and only an authenticated
// administrator moves them elsewhere.
const (
	FeedbackStatusPending  = "pending"
	FeedbackStatusResolved = "resolved"
	FeedbackStatusRejected = "rejected"
)

// KnownFeedbackTypes lists the accepted feedback type values in display order.
var KnownFeedbackTypes = []string{
	FeedbackTypePraise,
	FeedbackTypeComplaint,
	FeedbackTypeSuggestion,
}

// KnownFeedbackStatuses lists the accepted lifecycle states.
var KnownFeedbackStatuses = []string{
	FeedbackStatusPending,
	FeedbackStatusResolved,
	FeedbackStatusRejected,
}

// IsValidFeedbackType reports whether t is an accepted feedback type.
func IsValidFeedbackType(t string) bool {
	for _, known := range KnownFeedbackTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsValidFeedbackStatus reports whether s is an accepted lifecycle status.
func IsValidFeedbackStatus(s string) bool {
	for _, known := range KnownFeedbackStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Feedback represents one stored feedback record. IPAddress is derived from
// the request, never supplied by the visitor.
type Feedback struct {
	ID             int64     `json:"id"`
	Type           string    `json:"type"`
	Department     string    `json:"department"`
	TargetRole     string    `json:"target_role"`
	TargetName     string    `json:"target_name"`
	Description    string    `json:"description"`
	SubmitterName  string    `json:"submitter_name"`
	SubmitterPhone string    `json:"submitter_phone"`
	IPAddress      string    `json:"ip_address"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// FeedbackCreate is the request body for the public submission endpoint. The
// field names match the visitor form payload.
type FeedbackCreate struct {
	Type           string `json:"type"`
	Department     string `json:"department"`
	TargetRole     string `json:"targetRole"`
	TargetName     string `json:"targetName"`
	Description    string `json:"description"`
	SubmitterName  string `json:"submitterName"`
	SubmitterPhone string `json:"submitterPhone"`
}

// FeedbackStatusUpdate is the request body for the admin status update endpoint.
type FeedbackStatusUpdate struct {
	Status string `json:"status"`
}

// FeedbackStats aggregates counts for the admin dashboard. Today is computed
// in the institution's civil time zone, not the server zone.
type FeedbackStats struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"by_type"`
	Today  int64            `json:"today"`
}
