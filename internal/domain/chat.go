package domain

// Roles used by the Assistants API message list.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ContentTypeText marks a message content block carrying plain text.
const ContentTypeText = "text"

// Thread is an upstream conversation thread. One is created per chat request
// and never reused.
type Thread struct {
	ID string `json:"id"`
}

// Message is one entry of a thread's message list.
type Message struct {
	ID      string         `json:"id"`
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is a single content element of a Message. Text is set only
// when Type is "text".
type ContentBlock struct {
	Type string    `json:"type"`
	Text *TextBody `json:"text,omitempty"`
}

type TextBody struct {
	Value string `json:"value"`
}
