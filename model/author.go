package model

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// AgentRef is the part of an Agent shown next to its messages.
type AgentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRef is the part of a User shown next to their messages.
type UserRef struct {
	ID       string  `json:"id"`
	UserName *string `json:"userName"`
}

// Author is who produced a message: an agent for assistant messages, a user
// for user messages. At most one side is ever set.
type Author struct {
	agent *AgentRef
	user  *UserRef
}

func AgentAuthor(ref AgentRef) Author {
	return Author{agent: &ref}
}

func UserAuthor(ref UserRef) Author {
	return Author{user: &ref}
}

// Role is the message role matching this author, or "" for the zero Author.
func (a Author) Role() Role {
	switch {
	case a.agent != nil:
		return RoleAssistant
	case a.user != nil:
		return RoleUser
	}
	return ""
}

func (a Author) Agent() (AgentRef, bool) {
	if a.agent == nil {
		return AgentRef{}, false
	}
	return *a.agent, true
}

func (a Author) User() (UserRef, bool) {
	if a.user == nil {
		return UserRef{}, false
	}
	return *a.user, true
}

func (a Author) IsZero() bool {
	return a.agent == nil && a.user == nil
}
