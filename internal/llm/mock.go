package llm

import "context"

// MockClient permite tests sin llamar a un LLM real. Guarda el ultimo prompt
// recibido para poder inspeccionarlo.
type MockClient struct {
	Response   string
	Err        error
	Calls      int
	LastPrompt string
}

func (m *MockClient) Generate(_ context.Context, prompt string) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
