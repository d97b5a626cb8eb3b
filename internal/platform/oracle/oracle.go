// Package oracle wraps the semantic-similarity collaborator the Scorer's
// Intent and Synergy components depend on (external interfaces, §6).
package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	redisPlatform "github.com/jvmatch/partnermatch/internal/platform/redis"

	"github.com/jvmatch/partnermatch/internal/platform/logger"

	"time"
)

// MinBatchSize is the floor on the configured batch size, the most pairs
// sent in one model call. Pending pairs are split into chunks of that size;
// the last chunk, or a run with fewer pending pairs, holds fewer.
const MinBatchSize = 32

// Oracle computes semantic_similarity(a, b) -> float in [0,1], the external
// collaborator named in §6. It never returns an error that the caller must
// treat as fatal: BatchSimilarity folds oracle failures into the Jaccard
// fallback internally.
type Oracle interface {
	BatchSimilarity(ctx context.Context, pairs []Pair) []float64
}

// Pair is one (a, b) text comparison request.
type Pair struct {
	A string
	B string
}

// AnthropicOracle is the production Oracle, backed by anthropic-sdk-go and
// memoized in Redis. The teacher's go.mod carried anthropic-sdk-go as an
// unused dependency; this is where it earns its keep.
type AnthropicOracle struct {
	client    anthropic.Client
	cache     *redisPlatform.Client
	log       *logger.Logger
	model     anthropic.Model
	batchSize int
	cacheTTL  time.Duration
}

// NewAnthropicOracle builds an oracle. apiKey may be empty, in which case no
// key option is set; model calls are still issued, and a call that fails
// leaves its batch on the Jaccard fallback like any live API failure.
func NewAnthropicOracle(apiKey string, cache *redisPlatform.Client, log *logger.Logger, model string, batchSize int, cacheTTL time.Duration) *AnthropicOracle {
	if batchSize < MinBatchSize {
		batchSize = MinBatchSize
	}
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &AnthropicOracle{
		client:    anthropic.NewClient(opts...),
		cache:     cache,
		log:       log,
		model:     anthropic.Model(model),
		batchSize: batchSize,
		cacheTTL:  cacheTTL,
	}
}

// BatchSimilarity resolves every pair's similarity score, memoized by
// (normalized_a, normalized_b) in Redis, falling back to Jaccard token
// overlap for anything the oracle couldn't answer (§5, §7: "never fatal").
func (o *AnthropicOracle) BatchSimilarity(ctx context.Context, pairs []Pair) []float64 {
	results := make([]float64, len(pairs))
	pending := make([]int, 0, len(pairs))

	for i, p := range pairs {
		key := cacheKey(p)
		if o.cache != nil {
			if cached, err := o.cache.Get(ctx, key).Result(); err == nil {
				var score float64
				if jsonErr := json.Unmarshal([]byte(cached), &score); jsonErr == nil {
					results[i] = score
					continue
				}
			}
		}
		pending = append(pending, i)
	}

	for start := 0; start < len(pending); start += o.batchSize {
		end := start + o.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		indices := pending[start:end]
		batch := make([]Pair, len(indices))
		for j, idx := range indices {
			batch[j] = pairs[idx]
		}

		scores, err := o.callModel(ctx, batch)
		if err != nil {
			if o.log != nil {
				o.log.WithError("ORACLE_FALLBACK").Warn("semantic similarity oracle unavailable, falling back to Jaccard")
			}
			for j, idx := range indices {
				results[idx] = Jaccard(batch[j].A, batch[j].B)
			}
			continue
		}

		for j, idx := range indices {
			results[idx] = scores[j]
			if o.cache != nil {
				if encoded, err := json.Marshal(scores[j]); err == nil {
					o.cache.Set(ctx, cacheKey(batch[j]), encoded, o.cacheTTL)
				}
			}
		}
	}

	return results
}

// callModel issues one batched request to the model, asking for a JSON
// array of similarity scores in the same order as the input pairs.
func (o *AnthropicOracle) callModel(ctx context.Context, batch []Pair) ([]float64, error) {
	var prompt strings.Builder
	prompt.WriteString("Score the semantic similarity of each pair of phrases below on a scale from 0.0 (unrelated) to 1.0 (same meaning). ")
	prompt.WriteString("Respond with ONLY a JSON array of numbers, one per pair, in order.\n\n")
	for i, p := range batch {
		fmt.Fprintf(&prompt, "%d. A: %q  B: %q\n", i+1, p.A, p.B)
	}

	message, err := o.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     o.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.String())),
		},
	})
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	var scores []float64
	if err := json.Unmarshal([]byte(extractJSONArray(text.String())), &scores); err != nil {
		return nil, fmt.Errorf("oracle: unparsable response: %w", err)
	}
	if len(scores) != len(batch) {
		return nil, fmt.Errorf("oracle: expected %d scores, got %d", len(batch), len(scores))
	}
	for i, s := range scores {
		if s < 0 {
			scores[i] = 0
		} else if s > 1 {
			scores[i] = 1
		}
	}
	return scores, nil
}

// extractJSONArray trims any leading/trailing prose the model adds around
// the bracketed array it was asked for.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return "[]"
	}
	return s[start : end+1]
}

func cacheKey(p Pair) string {
	a, b := normalize(p.A), normalize(p.B)
	if a > b {
		a, b = b, a
	}
	sum := sha256.Sum256([]byte(a + "\x00" + b))
	return "oracle:similarity:" + hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Jaccard computes token-overlap similarity over lowercased, stop-word
// stripped sets, the documented fallback when the oracle is disabled or
// fails (§4.3 Intent, §7 Oracle errors).
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}

	union := len(setA)
	for token := range setB {
		if !setA[token] {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "into": true,
	"is": true, "it": true, "of": true, "on": true, "or": true, "our": true,
	"that": true, "the": true, "their": true, "to": true, "we": true, "with": true,
}

func tokenSet(s string) map[string]bool {
	tokens := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		t = strings.Trim(t, ".,;:!?'\"()")
		if t == "" || stopWords[t] {
			continue
		}
		set[t] = true
	}
	return set
}
