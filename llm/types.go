package llm

import "context"

// Message is a provider-neutral chat message.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

const (
	// RoleSystem is used for system-level instructions.
	RoleSystem = "system"
	// RoleUser is used for user messages.
	RoleUser = "user"
	// RoleAssistant is used for model responses.
	RoleAssistant = "assistant"
)

// Provider is the text-generation capability. Implementations own their own
// timeout and retry behavior; callers treat a returned error as the final
// outcome of the call.
type Provider interface {
	// CallLLM sends the messages to the model and returns its response.
	CallLLM(ctx context.Context, messages []Message) (Message, error)

	// GetName returns the provider identifier, e.g. "gemini".
	GetName() string
}

// ImageProvider is the image-generation capability. GenerateImage persists
// the image where document assembly can read it and returns the file path.
type ImageProvider interface {
	GenerateImage(ctx context.Context, prompt string, section string) (string, error)
	GetName() string
}
