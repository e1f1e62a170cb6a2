package wortlex

import (
	"fmt"
	"strings"
)

// Direction is an ordered source-target language pair such as "de-ru".
type Direction string

const (
	DirectionDeRu Direction = "de-ru"
	DirectionRuDe Direction = "ru-de"
	DirectionDeDe Direction = "de-de"
	DirectionDeEn Direction = "de-en"
	DirectionEnDe Direction = "en-de"
	DirectionRuRu Direction = "ru-ru"
	DirectionRuEn Direction = "ru-en"
	DirectionEnRu Direction = "en-ru"
	DirectionEnEn Direction = "en-en"
)

// SupportedDirections lists the language pairs accepted by Dictionary.
var SupportedDirections = map[Direction]bool{
	DirectionDeRu: true,
	DirectionRuDe: true,
	DirectionDeDe: true,
	DirectionDeEn: true,
	DirectionEnDe: true,
	DirectionRuRu: true,
	DirectionRuEn: true,
	DirectionEnRu: true,
	DirectionEnEn: true,
}

// LanguageNames maps language codes to human-readable names.
var LanguageNames = map[string]string{
	"de": "German",
	"ru": "Russian",
	"en": "English",
	"uk": "Ukrainian",
	"tr": "Turkish",
	"fr": "French",
	"it": "Italian",
	"es": "Spanish",
	"pl": "Polish",
}

// ParseDirection normalizes s ("DE_RU", " de-ru ") and checks it is supported.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")))
	if !d.Valid() {
		return "", &ValidationError{Field: "direction", Message: fmt.Sprintf("unsupported direction %q", s)}
	}
	return d, nil
}

// Valid reports whether d is one of SupportedDirections.
func (d Direction) Valid() bool {
	return SupportedDirections[d]
}

// Source returns the source language code.
func (d Direction) Source() string {
	src, _, _ := strings.Cut(string(d), "-")
	return src
}

// Target returns the target language code.
func (d Direction) Target() string {
	_, dst, _ := strings.Cut(string(d), "-")
	return dst
}

// InvolvesGerman reports whether either side of the pair is German.
func (d Direction) InvolvesGerman() bool {
	return d.Source() == "de" || d.Target() == "de"
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	return string(d)
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(code string) string {
	if name, ok := LanguageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// DescribeDirection renders d as "German → Russian".
func DescribeDirection(d Direction) string {
	return GetLanguageName(d.Source()) + " → " + GetLanguageName(d.Target())
}
