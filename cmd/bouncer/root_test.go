package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/bouncer/config"
	"github.com/fwojciec/bouncer/fs"
	"github.com/fwojciec/bouncer/heuristic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// Uses t.Setenv, so it cannot run in parallel.
func TestRootCmd_EndToEnd(t *testing.T) {
	t.Setenv("BOUNCER_CONFIG", "")
	t.Setenv("BOUNCER_DATA_DIR", t.TempDir())
	t.Setenv("BOUNCER_CLASSIFIER", "heuristic")

	id, err := execute(t, "submit", "--venue", "Club X", "--rating", "bad", "--tag", "Aggressive", "--story", "they shouted")
	require.NoError(t, err)
	id = strings.TrimSpace(id)
	require.NotEmpty(t, id)

	_, err = execute(t, "submit", "--venue", "club  x", "--rating", "bad")
	require.NoError(t, err)

	out, err := execute(t, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "they shouted")

	out, err = execute(t, "rank", "--rating", "bad")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Club X (2)")

	out, err = execute(t, "vote", id, "--down")
	require.NoError(t, err)
	assert.Equal(t, id+" -1\n", out)

	out, err = execute(t, "tag-vote", "--venue", "Club X", "--tag", "aggressive", "--user", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Aggressive +1\n", out)

	out, err = execute(t, "tag-stats", "--venue", "Club X")
	require.NoError(t, err)
	assert.Contains(t, out, "Aggressive (1 votes)")

	out, err = execute(t, "reclassify", "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "reclassified 2 reviews (0 changed, 0 skipped)\n", out)

	_, err = execute(t, "vote", "missing-id")
	require.Error(t, err)
}

func TestRootCmd_RejectsUnknownEngine(t *testing.T) {
	t.Setenv("BOUNCER_CONFIG", "")
	t.Setenv("BOUNCER_DATA_DIR", t.TempDir())
	t.Setenv("BOUNCER_CLASSIFIER", "oracle")

	_, err := execute(t, "classify", "--rating", "good")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown classifier engine")
}

func TestCLI_NewClassifier(t *testing.T) {
	t.Parallel()

	t.Run("heuristic engine", func(t *testing.T) {
		t.Parallel()

		c := &cli{logger: zap.NewNop(), cfg: config.Config{
			Classifier: config.ClassifierConfig{Engine: config.EngineHeuristic},
		}}

		classifier, err := c.newClassifier(context.Background(), true)

		require.NoError(t, err)
		assert.IsType(t, &heuristic.Classifier{}, classifier)
	})

	geminiCLI := func(t *testing.T) *cli {
		return &cli{logger: zap.NewNop(), cfg: config.Config{
			Classifier: config.ClassifierConfig{
				Engine:   config.EngineGemini,
				CacheDir: t.TempDir(),
				Gemini:   config.GeminiConfig{APIKey: "test-key", Model: "gemini-test"},
			},
		}}
	}

	t.Run("gemini engine falls back outside the cache", func(t *testing.T) {
		t.Parallel()

		classifier, err := geminiCLI(t).newClassifier(context.Background(), true)

		require.NoError(t, err)
		assert.IsType(t, &heuristic.Fallback{}, classifier)
	})

	t.Run("gemini engine without fallback surfaces errors", func(t *testing.T) {
		t.Parallel()

		classifier, err := geminiCLI(t).newClassifier(context.Background(), false)

		require.NoError(t, err)
		assert.IsType(t, &fs.Classifier{}, classifier)
	})
}
