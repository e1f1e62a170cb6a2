package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ZaguanLabs/wortlex"
	"github.com/ZaguanLabs/wortlex/cache"
	"github.com/ZaguanLabs/wortlex/config"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zeitungResponse = `{"def":[{"text":"Zeitung","pos":"noun","ts":"ˈʦaɪ̯tʊŋ","tr":[{"text":"газета","pos":"noun","gen":"ж","syn":[{"text":"издание"}],"ex":[{"text":"die Zeitung lesen","tr":[{"text":"читать газету"}]}]}]}]}`

// fakeDictionary serves the lookup API and counts requests.
func fakeDictionary(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/getLangs":
			w.Write([]byte(`["de-ru","ru-de","de-en"]`))
		case "/lookup":
			if r.URL.Query().Get("text") == "Zeitung" {
				w.Write([]byte(zeitungResponse))
				return
			}
			w.Write([]byte(`{"def":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.PathEnv, "")
	t.Setenv("DICTIONARY_API_KEY", "test-key")
	t.Setenv("DICTIONARY_BASE_URL", baseURL)
	t.Setenv("ARTICLE_WIKTIONARY", "false")
	t.Setenv("ARTICLE_SUFFIX", "true")
	t.Setenv("LOG_LEVEL", "error")

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand(&bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, "wortlex", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
	for _, name := range []string{"lookup", "langs", "serve", "cache"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := runCLI(t, "--version")

	require.NoError(t, err)
	assert.Contains(t, stdout, wortlex.Version)
}

func TestRun_MissingConfig(t *testing.T) {
	setupEnv(t, "")
	os.Unsetenv("DICTIONARY_BASE_URL")

	_, _, err := runCLI(t, "lookup", "Zeitung")

	var cfgErr *wortlex.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
}

func TestRun_Lookup(t *testing.T) {
	srv, _ := fakeDictionary(t)
	setupEnv(t, srv.URL)

	stdout, _, err := runCLI(t, "lookup", "Zeitung")

	require.NoError(t, err)
	assert.Contains(t, stdout, "die Zeitung [ˈʦaɪ̯tʊŋ] noun")
	assert.Contains(t, stdout, "1. газета ж")
	assert.Contains(t, stdout, "syn: издание")
	assert.Contains(t, stdout, "ex: die Zeitung lesen → читать газету")
	assert.Contains(t, stdout, "(remote)")
}

func TestRun_LookupNoExamples(t *testing.T) {
	srv, _ := fakeDictionary(t)
	setupEnv(t, srv.URL)

	stdout, _, err := runCLI(t, "lookup", "--no-examples", "Zeitung")

	require.NoError(t, err)
	assert.NotContains(t, stdout, "ex:")
}

func TestRun_LookupJSON(t *testing.T) {
	srv, _ := fakeDictionary(t)
	setupEnv(t, srv.URL)

	stdout, _, err := runCLI(t, "lookup", "--json", "Zeitung")
	require.NoError(t, err)

	var res wortlex.LookupResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.True(t, res.HasResults)
	require.NotNil(t, res.GermanArticle)
	assert.Equal(t, "die", res.GermanArticle.Article)
	assert.Equal(t, "f", res.GermanArticle.Gender)
}

func TestRun_LookupFallback(t *testing.T) {
	srv, calls := fakeDictionary(t)
	setupEnv(t, srv.URL)

	stdout, _, err := runCLI(t, "lookup", "Hallo")

	require.NoError(t, err)
	assert.Contains(t, stdout, "привет")
	assert.Contains(t, stdout, "(fallback)")
	assert.Equal(t, int32(0), calls.Load(), "fallback words must not reach the network")
}

func TestRun_LookupNoResults(t *testing.T) {
	srv, _ := fakeDictionary(t)
	setupEnv(t, srv.URL)

	stdout, _, err := runCLI(t, "lookup", "Quatschwort")

	require.NoError(t, err)
	assert.Contains(t, stdout, `No results for "Quatschwort" (German → Russian)`)
}

func TestRun_LookupBadDirection(t *testing.T) {
	srv, calls := fakeDictionary(t)
	setupEnv(t, srv.URL)

	_, _, err := runCLI(t, "lookup", "--dir", "xx-yy", "Haus")

	var vErr *wortlex.ValidationError
	assert.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRun_LookupTooLong(t *testing.T) {
	srv, calls := fakeDictionary(t)
	setupEnv(t, srv.URL)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, _, err := runCLI(t, "lookup", string(long))

	var vErr *wortlex.ValidationError
	assert.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRun_Langs(t *testing.T) {
	srv, _ := fakeDictionary(t)
	setupEnv(t, srv.URL)

	stdout, _, err := runCLI(t, "langs")

	require.NoError(t, err)
	assert.Equal(t, "de-ru\nru-de\nde-en\n", stdout)
}

func TestRun_CacheExport(t *testing.T) {
	srv, _ := fakeDictionary(t)
	setupEnv(t, srv.URL)

	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("# warm-up\nZeitung\nHallo\n\n"), 0o644))
	out := filepath.Join(dir, "snapshot.json")

	stdout, stderr, err := runCLI(t, "cache", "export", "--words", words, out)

	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote 2 entries")
	assert.Contains(t, stderr, "looked up 2 words, 0 failed")

	mem := cache.NewInMemoryCache()
	res, err := cache.ImportFromFile(mem, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
}

func TestRun_SnapshotWarmStart(t *testing.T) {
	srv, calls := fakeDictionary(t)
	setupEnv(t, srv.URL)
	t.Setenv("CACHE_SNAPSHOT", filepath.Join(t.TempDir(), "warm.json"))

	_, _, err := runCLI(t, "lookup", "Zeitung")
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())

	// The second process starts from the snapshot written on exit.
	stdout, _, err := runCLI(t, "lookup", "Zeitung")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, stdout, "(cache)")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv, _ := fakeDictionary(t)
	setupEnv(t, srv.URL)

	cfg, err := config.Load()
	require.NoError(t, err)
	a, err := newApp(cfg, config.NewLogger(cfg.Log, &bytes.Buffer{}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, serve(ctx, a, "127.0.0.1:0"))
}

func TestReadWords_Missing(t *testing.T) {
	_, err := readWords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
