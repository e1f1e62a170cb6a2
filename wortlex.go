// Package wortlex provides a dictionary lookup engine for German learners.
//
// Wortlex resolves a word in a given direction (for example "de-ru") against
// an in-process cache, a curated fallback table of high-frequency words and a
// remote dictionary provider, and optionally attaches the German definite
// article of nouns.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/wortlex"
//	    "github.com/ZaguanLabs/wortlex/article"
//	    "github.com/ZaguanLabs/wortlex/cache"
//	    "github.com/ZaguanLabs/wortlex/provider"
//	)
//
//	func main() {
//	    p, err := provider.NewYandexProvider(provider.YandexConfig{
//	        APIKey:  os.Getenv("DICTIONARY_API_KEY"),
//	        BaseURL: os.Getenv("DICTIONARY_BASE_URL"),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    d, err := wortlex.NewDictionary(p,
//	        wortlex.WithCache(cache.NewInMemoryCache()),
//	        wortlex.WithArticleDetector(article.NewSuffixDetector()),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    result, err := d.Lookup(context.Background(), "Haus", wortlex.DirectionDeRu)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.Definitions[0].Translations[0].Text) // дом
//	}
package wortlex
