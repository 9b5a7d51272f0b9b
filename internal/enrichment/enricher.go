// Package enrichment fills in the marketing description and image URL of new products.
package enrichment

import (
	"context"
	"fmt"
	"net/url"

	"catalog-service/prometheus"

	"go.uber.org/zap"
)

const (
	imageBaseURL = "https://pollinations.ai/p/"
	imageWidth   = 1024
	imageHeight  = 1024
	imageSeed    = 42
	imageModel   = "flux"
)

// TextGenerator produces text for a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Result holds the generated product content
type Result struct {
	Description string
	ImageURL    string
}

// Enricher generates product content. A nil text generator means the remote
// service is not configured and every description comes from the template.
type Enricher struct {
	text    TextGenerator
	metrics *prometheus.Metrics
	log     *zap.Logger
}

// NewEnricher creates an Enricher. text may be nil.
func NewEnricher(text TextGenerator, metrics *prometheus.Metrics, log *zap.Logger) *Enricher {
	return &Enricher{text: text, metrics: metrics, log: log}
}

// Enrich generates the description for name and, unless suppliedImageURL is set,
// an image URL derived from it. It fails only when ctx is done, so a cancelled
// request never reaches the insert.
func (e *Enricher) Enrich(ctx context.Context, name, suppliedImageURL string) (Result, error) {
	defer e.metrics.TrackEnrichment()()

	description := e.Description(ctx, name)
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("enrich product %q: %w", name, err)
	}

	imageURL := suppliedImageURL
	if imageURL == "" {
		imageURL = ImageURL(description, name)
	}

	return Result{Description: description, ImageURL: imageURL}, nil
}

// Description asks the text service for a one-paragraph marketing description and
// falls back to the template when the service is unconfigured, failing or returns nothing.
func (e *Enricher) Description(ctx context.Context, name string) string {
	if e.text == nil {
		e.log.Warn("Description generator not configured, using template", zap.String("product_name", name))
		e.metrics.RecordEnrichmentFallback("not_configured")
		return FallbackDescription(name)
	}

	text, err := e.text.GenerateText(ctx, descriptionPrompt(name))
	if err != nil {
		e.log.Warn("Description generation failed, using template",
			zap.String("product_name", name),
			zap.Error(err))
		e.metrics.RecordEnrichmentFallback("request_failed")
		return FallbackDescription(name)
	}

	return text
}

// FallbackDescription is the deterministic description used when generation is unavailable
func FallbackDescription(name string) string {
	return fmt.Sprintf("¡Descubre el increíble %[1]s! Este producto revolucionario combina diseño elegante con "+
		"funcionalidad de vanguardia para ofrecerte una experiencia inigualable. Perfecto para el día a día o para "+
		"ocasiones especiales, el %[1]s es la elección ideal para quienes buscan calidad y estilo.", name)
}

// ImageURL builds the image service URL for description. It only formats a string;
// whether the image renders is up to the image service.
func ImageURL(description, name string) string {
	query := url.Values{}
	query.Set("width", fmt.Sprint(imageWidth))
	query.Set("height", fmt.Sprint(imageHeight))
	query.Set("seed", fmt.Sprint(imageSeed))
	query.Set("model", imageModel)

	return imageBaseURL + url.PathEscape(description) + "?" + query.Encode()
}

func descriptionPrompt(name string) string {
	return fmt.Sprintf("Escribe una descripción de marketing atractiva de un solo párrafo para el producto %q. "+
		"Responde solo con el párrafo.", name)
}
