package provider

import "github.com/ZaguanLabs/wortlex"

// Normalize flattens a lookup response into a LookupResult.
// Provider order is preserved and nothing is deduplicated. Absent lists
// become empty lists. An example's translation is its first translated sentence.
func Normalize(word string, direction wortlex.Direction, resp Response) *wortlex.LookupResult {
	defs := make([]wortlex.Definition, 0, len(resp.Def))
	for _, e := range resp.Def {
		def := wortlex.Definition{
			Word:          e.Text,
			PartOfSpeech:  e.Pos,
			Transcription: e.Ts,
			Translations:  make([]wortlex.Translation, 0, len(e.Tr)),
		}
		for _, tr := range e.Tr {
			def.Translations = append(def.Translations, normalizeTranslation(tr))
		}
		defs = append(defs, def)
	}

	return &wortlex.LookupResult{
		Word:        word,
		Direction:   direction,
		Definitions: defs,
		HasResults:  len(defs) > 0,
	}
}

func normalizeTranslation(tr Translation) wortlex.Translation {
	out := wortlex.Translation{
		Text:         tr.Text,
		PartOfSpeech: tr.Pos,
		Gender:       tr.Gen,
		Synonyms:     texts(tr.Syn),
		Meanings:     texts(tr.Mean),
		Examples:     make([]wortlex.Example, 0, len(tr.Ex)),
	}
	for _, ex := range tr.Ex {
		example := wortlex.Example{Original: ex.Text}
		if len(ex.Tr) > 0 {
			example.Translation = ex.Tr[0].Text
		}
		out.Examples = append(out.Examples, example)
	}
	return out
}

func texts(items []TextItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Text)
	}
	return out
}
