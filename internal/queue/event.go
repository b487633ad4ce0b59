// Package queue defines message payloads exchanged over the message broker.
package queue

// Recipe activity actions as carried in RecipeActivityEvent.Action.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecipeActivityEvent is published after a recipe mutation succeeds. It
// carries enough information for downstream consumers to log or trigger
// analytics without querying the primary database.
type RecipeActivityEvent struct {
	Action     string `json:"action"`
	RecipeID   uint64 `json:"recipe_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title"`
	OccurredAt string `json:"occurred_at"`
}
