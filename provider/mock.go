package provider

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/wortlex"
)

// MockProvider is a mock dictionary provider for testing and offline use.
type MockProvider struct {
	Entries   map[string]Response // Keyed by "direction:text"
	Languages []string
	Err       error // Returned by every call when set

	mu          sync.Mutex
	callCount   int
	lastRequest *LookupQuery
}

// NewMockProvider creates a new mock provider with a few default entries.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Entries: map[string]Response{
			"de-ru:haus": {Def: []Entry{{
				Text: "Haus", Pos: "noun", Ts: "haʊ̯s",
				Tr: []Translation{
					{Text: "дом", Pos: "noun", Gen: "м", Syn: []TextItem{{Text: "здание"}}, Mean: []TextItem{{Text: "Gebäude"}}},
				},
			}}},
			"de-ru:tisch": {Def: []Entry{{
				Text: "Tisch", Pos: "noun", Ts: "tɪʃ",
				Tr: []Translation{{Text: "стол", Pos: "noun", Gen: "м"}, {Text: "столик", Pos: "noun", Gen: "м"}},
			}}},
		},
		Languages: []string{"de-ru", "ru-de", "de-de", "de-en", "en-de"},
	}
}

// Lookup returns the canned entry for q, or an empty result.
func (m *MockProvider) Lookup(ctx context.Context, q LookupQuery) (*wortlex.LookupResult, error) {
	m.mu.Lock()
	m.callCount++
	m.lastRequest = &q
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	resp := m.Entries[string(q.Direction)+":"+wortlex.NormalizeText(q.Text)]
	return Normalize(q.Text, q.Direction, resp), nil
}

// SupportedLanguages returns the configured language list.
func (m *MockProvider) SupportedLanguages(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return append([]string(nil), m.Languages...), nil
}

// CallCount returns the number of calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the last lookup received.
func (m *MockProvider) LastRequest() *LookupQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
