package entity

type MessageRole string

const RoleUser MessageRole = "user"

type Message struct {
	Role    MessageRole
	Content string
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
