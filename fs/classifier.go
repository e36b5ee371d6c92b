package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/bouncer"
)

// Compile-time interface verification.
var _ bouncer.Classifier = (*Classifier)(nil)

// Classifier wraps a bouncer.Classifier with file-based caching.
type Classifier struct {
	inner     bouncer.Classifier
	cacheDir  string
	namespace string
}

// NewClassifier creates a new caching classifier. The namespace names the
// engine and model behind inner; entries from other namespaces are never
// returned.
func NewClassifier(inner bouncer.Classifier, cacheDir, namespace string) *Classifier {
	return &Classifier{
		inner:     inner,
		cacheDir:  cacheDir,
		namespace: namespace,
	}
}

// Classify returns a cached classification or delegates to inner classifier.
func (c *Classifier) Classify(ctx context.Context, input bouncer.ReviewInput) (*bouncer.Classification, error) {
	hash := hashInput(c.namespace, input)

	if cached, err := c.loadFromCache(hash); err == nil {
		return cached, nil
	}

	result, err := c.inner.Classify(ctx, input)
	if err != nil {
		return nil, err
	}

	// Best-effort.
	_ = c.saveToCache(hash, result)

	return result, nil
}

// cacheKey is the canonical form of a ReviewInput. Tags are sorted so that
// selection order does not change the key.
type cacheKey struct {
	Namespace string         `json:"namespace"`
	Rating    bouncer.Rating `json:"rating"`
	Tags      []bouncer.Tag  `json:"tags"`
	Story     string         `json:"story"`
}

func hashInput(namespace string, input bouncer.ReviewInput) string {
	data, _ := json.Marshal(cacheKey{
		Namespace: namespace,
		Rating:    input.Rating,
		Tags:      input.Tags.Sorted(),
		Story:     strings.TrimSpace(input.Story),
	})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *Classifier) cachePath(hash string) string {
	return filepath.Join(c.cacheDir, hash+".json")
}

func (c *Classifier) loadFromCache(hash string) (*bouncer.Classification, error) {
	data, err := os.ReadFile(c.cachePath(hash))
	if err != nil {
		return nil, err
	}

	var result bouncer.Classification
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	if verrs := bouncer.ValidateClassification(&result); len(verrs) > 0 {
		return nil, verrs[0]
	}

	return &result, nil
}

func (c *Classifier) saveToCache(hash string, result *bouncer.Classification) error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return os.WriteFile(c.cachePath(hash), data, 0644)
}
