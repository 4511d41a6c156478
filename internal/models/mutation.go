package models

// Action names a committed change to the registros table.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Mutation is handed to post-commit hooks after the store acknowledged a change.
type Mutation struct {
	Action   Action `json:"action"`
	RecordID int64  `json:"id"`
}
