// Package dto contains data transfer objects for the search domain
package dto

import (
	"strconv"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
)

// Sender identifies the Telegram user behind an update
type Sender struct {
	UserID    int64  `json:"userId" validate:"required"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName returns the first name, falling back to the username
func (s Sender) DisplayName() string {
	if s.FirstName != "" {
		return s.FirstName
	}
	return s.Username
}

// Mention names the sender for admins: "Bruce (@bruce)", "Bruce", "@bruce" or the bare user id
func (s Sender) Mention() string {
	switch {
	case s.FirstName != "" && s.Username != "":
		return s.FirstName + " (@" + s.Username + ")"
	case s.FirstName != "":
		return s.FirstName
	case s.Username != "":
		return "@" + s.Username
	default:
		return strconv.FormatInt(s.UserID, 10)
	}
}

// StartCommandRequest represents a request to handle /start command
type StartCommandRequest struct {
	Sender Sender `json:"sender"`
}

// SearchRequest is a free-text query sent by a user
type SearchRequest struct {
	Sender    Sender `json:"sender"`
	ChatID    int64  `json:"chatId"`
	MessageID int    `json:"messageId"`
	Query     string `json:"query"`
}

// OutcomeKind tells which branch the search flow took
type OutcomeKind string

const (
	OutcomeBlocked   OutcomeKind = "blocked"
	OutcomeResults   OutcomeKind = "results"
	OutcomeNoResults OutcomeKind = "no_results"
)

// SearchOutcome describes what the search flow delivered
type SearchOutcome struct {
	Kind              OutcomeKind     `json:"kind"`
	Text              string          `json:"text"`
	JoinTarget        string          `json:"joinTarget,omitempty"`
	Results           []entities.Post `json:"results,omitempty"`
	MessageID         int             `json:"messageId,omitempty"`
	WithImage         bool            `json:"withImage,omitempty"`
	DeletionScheduled bool            `json:"deletionScheduled,omitempty"`
}

// GateDecision is the result of the access gate
type GateDecision struct {
	Allowed    bool   `json:"allowed"`
	JoinTarget string `json:"joinTarget,omitempty"`
}

// Allow is the decision that lets a query through
func Allow() GateDecision {
	return GateDecision{Allowed: true}
}

// Block is the decision that asks the user to join target first
func Block(target string) GateDecision {
	return GateDecision{Allowed: false, JoinTarget: target}
}

// EscalationRequest is raised by the "Request Admin to Add" action
type EscalationRequest struct {
	Sender          Sender `json:"sender"`
	ChatID          int64  `json:"chatId"`
	PromptMessageID int    `json:"promptMessageId"`
	PromptHasPhoto  bool   `json:"promptHasPhoto"`
	Query           string `json:"query" validate:"required"`
}

// EscalationResult reports the created request and notification fan-out
type EscalationResult struct {
	RequestID      string `json:"requestId"`
	AdminsNotified int    `json:"adminsNotified"`
	AdminsFailed   int    `json:"adminsFailed"`
}

// BroadcastResult reports per-recipient delivery counts
type BroadcastResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// CommandResponse represents a response for bot commands
type CommandResponse struct {
	Message string `json:"message"`
}
