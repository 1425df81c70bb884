package extract

import (
	"context"

	"github.com/umputun/corteo/pkg/domain"
)

// Pipeline runs every extractor over the same normalized text and assembles the event
type Pipeline struct {
	dates      *DateExtractor
	locator    *Locator
	classifier *Classifier
}

// NewPipeline makes a pipeline from its extractors
func NewPipeline(dates *DateExtractor, locator *Locator, classifier *Classifier) *Pipeline {
	return &Pipeline{dates: dates, locator: locator, classifier: classifier}
}

// Process turns one raw item into an event. The only error is ErrMalformedInput.
func (p *Pipeline) Process(ctx context.Context, item domain.RawItem, meta domain.SourceMeta) (domain.Event, error) {
	tc := NewTextContext(item.Text)

	parts := Parts{
		Title:          SynthesizeTitle(item.Text, item.SourceHandle),
		Description:    SynthesizeDescription(item.Text),
		DateTime:       p.dates.extract(tc),
		Location:       p.locator.locate(ctx, tc),
		Classification: p.classifier.classify(tc),
	}

	prov := Provenance{
		SourceName:    meta.Name,
		SourceURL:     item.SourceURL,
		EventURL:      item.PostURL,
		ImageURL:      item.ImageURL,
		FallbackTitle: item.Title,
	}
	if prov.SourceName == "" {
		prov.SourceName = item.SourceHandle
	}
	if prov.SourceURL == "" {
		prov.SourceURL = meta.URL
	}
	return Assemble(parts, prov)
}
