package wortlex

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

//go:embed fallback.json
var fallbackJSON []byte

// FallbackTranslation is a curated translation of a fallback word.
type FallbackTranslation struct {
	Text         string `json:"text"`
	PartOfSpeech string `json:"pos,omitempty"`
}

// FallbackEntry is a known-good answer for a high-frequency word.
// Only reliable entries short-circuit the remote provider.
type FallbackEntry struct {
	Translations  []FallbackTranslation `json:"translations"`
	Transcription string                `json:"transcription,omitempty"`
	IsReliable    bool                  `json:"reliable"`
}

// FallbackTable is an immutable direction → normalized word → entry map.
type FallbackTable struct {
	entries map[Direction]map[string]FallbackEntry
}

var defaultFallback = sync.OnceValue(func() *FallbackTable {
	t, err := LoadFallbackTable(bytes.NewReader(fallbackJSON))
	if err != nil {
		panic(fmt.Sprintf("wortlex: embedded fallback table: %v", err))
	}
	return t
})

// DefaultFallbackTable returns the table embedded in the package.
func DefaultFallbackTable() *FallbackTable {
	return defaultFallback()
}

// LoadFallbackTable decodes a JSON table of the form {"de-ru": {"hallo": {...}}}.
// Words are normalized on load.
func LoadFallbackTable(r io.Reader) (*FallbackTable, error) {
	var raw map[Direction]map[string]FallbackEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding fallback table: %w", err)
	}
	for dir := range raw {
		if !dir.Valid() {
			return nil, fmt.Errorf("fallback table: unsupported direction %q", dir)
		}
	}
	return NewFallbackTable(raw), nil
}

// NewFallbackTable copies entries into a new table.
func NewFallbackTable(entries map[Direction]map[string]FallbackEntry) *FallbackTable {
	t := &FallbackTable{entries: make(map[Direction]map[string]FallbackEntry, len(entries))}
	for dir, words := range entries {
		m := make(map[string]FallbackEntry, len(words))
		for word, entry := range words {
			m[NormalizeText(word)] = entry
		}
		t.entries[dir] = m
	}
	return t
}

// Lookup finds the entry for an already normalized word.
func (t *FallbackTable) Lookup(direction Direction, normalized string) (FallbackEntry, bool) {
	if t == nil {
		return FallbackEntry{}, false
	}
	entry, ok := t.entries[direction][normalized]
	return entry, ok
}

// Len returns the number of words across all directions.
func (t *FallbackTable) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, words := range t.entries {
		n += len(words)
	}
	return n
}

// Result builds a LookupResult with a single Definition wrapping every
// translation of the entry. word is the trimmed text as the caller typed it.
func (e FallbackEntry) Result(word string, direction Direction) *LookupResult {
	translations := make([]Translation, len(e.Translations))
	for i, tr := range e.Translations {
		translations[i] = Translation{
			Text:         tr.Text,
			PartOfSpeech: tr.PartOfSpeech,
			Synonyms:     []string{},
			Meanings:     []string{},
			Examples:     []Example{},
		}
	}

	def := Definition{
		Word:          word,
		Transcription: e.Transcription,
		Translations:  translations,
	}
	if len(e.Translations) > 0 {
		def.PartOfSpeech = e.Translations[0].PartOfSpeech
	}

	res := &LookupResult{
		Word:        word,
		Direction:   direction,
		Definitions: []Definition{def},
		Source:      SourceFallback,
	}
	res.HasResults = len(res.Definitions) > 0
	return res
}
