package llm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MockProvider implements Provider for tests. Responses are either scripted
// (cycled in order) or selected by substring patterns on the latest user
// message, and any call can be made to fail.
type MockProvider struct {
	name          string
	responses     []string
	responseIndex int
	patterns      map[string]string
	err           error
	callCount     int
	prompts       []string
}

// NewMockProvider creates a mock provider with a single placeholder response.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		name:      name,
		responses: []string{"mock response from " + name},
		patterns:  make(map[string]string),
	}
}

// CallLLM records the prompt and returns the configured response or error.
func (m *MockProvider) CallLLM(ctx context.Context, messages []Message) (Message, error) {
	m.callCount++
	if len(messages) > 0 {
		m.prompts = append(m.prompts, messages[len(messages)-1].Content)
	}

	if m.err != nil {
		return Message{}, m.err
	}

	if len(messages) > 0 {
		last := strings.ToLower(messages[len(messages)-1].Content)
		for pattern, response := range m.patterns {
			if strings.Contains(last, strings.ToLower(pattern)) {
				return Message{Role: RoleAssistant, Content: response}, nil
			}
		}
	}

	if len(m.responses) == 0 {
		return Message{Role: RoleAssistant, Content: "default mock response"}, nil
	}
	response := m.responses[m.responseIndex]
	m.responseIndex = (m.responseIndex + 1) % len(m.responses)
	return Message{Role: RoleAssistant, Content: response}, nil
}

// GetName returns the mock provider name.
func (m *MockProvider) GetName() string { return m.name }

// SetResponses replaces the scripted responses and rewinds the cycle.
func (m *MockProvider) SetResponses(responses ...string) {
	m.responses = responses
	m.responseIndex = 0
}

// SetResponsePattern selects responses by substring match on the latest user
// message, taking precedence over scripted responses.
func (m *MockProvider) SetResponsePattern(patterns map[string]string) {
	m.patterns = patterns
}

// SetError makes every subsequent call fail. A nil message clears it.
func (m *MockProvider) SetError(message string) {
	if message == "" {
		m.err = nil
		return
	}
	m.err = errors.New(message)
}

// GetCallCount returns how many times CallLLM ran.
func (m *MockProvider) GetCallCount() int { return m.callCount }

// Prompts returns the latest-message content of every recorded call.
func (m *MockProvider) Prompts() []string { return m.prompts }

// LastPrompt returns the most recent recorded prompt, or "".
func (m *MockProvider) LastPrompt() string {
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// MockImageProvider implements ImageProvider for tests. It fabricates file
// paths without touching the filesystem and can fail selectively per
// section, which the visual step's continue-on-error behavior depends on.
type MockImageProvider struct {
	name         string
	dir          string
	failSections map[string]bool
	err          error
	callCount    int
	sections     []string
}

// NewMockImageProvider creates a mock image provider writing under dir.
func NewMockImageProvider(name, dir string) *MockImageProvider {
	return &MockImageProvider{
		name:         name,
		dir:          dir,
		failSections: make(map[string]bool),
	}
}

// GenerateImage returns a deterministic path for the section, or the
// configured failure.
func (m *MockImageProvider) GenerateImage(ctx context.Context, prompt, section string) (string, error) {
	m.callCount++
	m.sections = append(m.sections, section)

	if m.err != nil {
		return "", m.err
	}
	if m.failSections[section] {
		return "", fmt.Errorf("image generation failed for %s", section)
	}

	name := strings.ToLower(strings.ReplaceAll(section, " ", "_")) + ".png"
	return filepath.Join(m.dir, name), nil
}

// GetName returns the mock provider name.
func (m *MockImageProvider) GetName() string { return m.name }

// FailSection makes generation fail for one section only.
func (m *MockImageProvider) FailSection(section string) {
	m.failSections[section] = true
}

// SetError makes every call fail.
func (m *MockImageProvider) SetError(message string) {
	if message == "" {
		m.err = nil
		return
	}
	m.err = errors.New(message)
}

// GetCallCount returns how many times GenerateImage ran.
func (m *MockImageProvider) GetCallCount() int { return m.callCount }

// Sections returns the section names of every recorded call, in order.
func (m *MockImageProvider) Sections() []string { return m.sections }
