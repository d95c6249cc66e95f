package models

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a chat transcript.
type Turn struct {
	Role Role   `json:"role" example:"user"`
	Text string `json:"text" example:"Hello"`
}

// DisplayRole is the role name shown in the chat view.
func (t Turn) DisplayRole() string {
	if t.Role == RoleModel {
		return "assistant"
	}
	return string(t.Role)
}
