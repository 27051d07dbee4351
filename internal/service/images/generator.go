package images

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"adventurego/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// Cache stores generated image URLs keyed by prompt hash. Lookups and writes
// are best-effort; a nil Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Generator renders scene illustrations through the OpenAI images API.
type Generator struct {
	client      *openai.Client
	cache       Cache
	model       string
	size        string
	quality     string
	stylePrefix string
	cacheTTL    time.Duration
}

func NewGenerator(cfg config.ImageConfig, cache Cache) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	size := cfg.Size
	if size == "" {
		size = openai.CreateImageSize1792x1024
	}
	quality := cfg.Quality
	if quality == "" {
		quality = openai.CreateImageQualityStandard
	}
	stylePrefix := cfg.StylePrefix
	if stylePrefix == "" {
		stylePrefix = "Fantasy adventure game scene, digital art style: "
	}

	return &Generator{
		client:      openai.NewClientWithConfig(clientCfg),
		cache:       cache,
		model:       model,
		size:        size,
		quality:     quality,
		stylePrefix: stylePrefix,
		cacheTTL:    time.Duration(cfg.CacheTTL) * time.Minute,
	}
}

// Generate returns a URL for an illustration of the prompt. Identical
// prompts within the cache TTL reuse the previously generated URL.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	fullPrompt := g.stylePrefix + prompt
	key := cacheKey(fullPrompt)

	if g.cache != nil {
		if url, err := g.cache.Get(ctx, key); err == nil && url != "" {
			return url, nil
		}
	}

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         fullPrompt,
		Model:          g.model,
		Size:           g.size,
		Quality:        g.quality,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
	})
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image response contained no url")
	}
	url := resp.Data[0].URL

	if g.cache != nil {
		if err := g.cache.Set(ctx, key, url, g.cacheTTL); err != nil {
			log.Printf("cache image url: %v", err)
		}
	}
	return url, nil
}

func cacheKey(prompt string) string {
	sum := md5.Sum([]byte(prompt))
	return "img:" + hex.EncodeToString(sum[:])
}
