package deck

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"ddp-generator/internal/config"
	"ddp-generator/internal/models"
	"ddp-generator/internal/pptx"
)

var ErrTemplateNotFound = errors.New("template not found")

// Builder fills one slide per step into a copy of the template.
type Builder struct {
	cfg         *config.Config
	processName string
}

func NewBuilder(cfg *config.Config) *Builder {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Builder{cfg: cfg}
}

// Build opens templatePath and adds a slide per step from the configured
// layout. Slides added before a failure stay in the returned presentation.
func (b *Builder) Build(steps []models.StepRecord, templatePath string) (*pptx.Presentation, []models.SlideResult, error) {
	if _, err := os.Stat(templatePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
		}
		return nil, nil, err
	}

	presentation, err := pptx.Open(templatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open template %s: %w", templatePath, err)
	}

	if b.processName != "" {
		n := presentation.ReplaceText(b.cfg.Placeholders.ProcessToken, b.processName)
		log.Debug().Int("runs", n).Msg("Applied process name to template slides")
	}

	slides := make([]models.SlideResult, 0, len(steps))
	for _, step := range steps {
		slide, err := presentation.AddSlide(b.cfg.Layout())
		if err != nil {
			return presentation, slides, fmt.Errorf("failed to add slide for step %s: %w", step.Number, err)
		}
		b.fill(slide, step)

		slides = append(slides, models.SlideResult{
			SlideIndex: presentation.SlideCount() - 1,
			Label:      step.Label(),
		})
	}

	log.Info().Int("slides", len(slides)).Int("total", presentation.SlideCount()).Msg("Filled step slides")
	return presentation, slides, nil
}

// fill writes the step into the named placeholders. Missing shapes are skipped.
func (b *Builder) fill(slide *pptx.Slide, step models.StepRecord) {
	names := b.cfg.Placeholders
	texts := []struct {
		shape string
		text  string
	}{
		{names.Header, step.Label()},
		{names.Description, step.Description},
		{names.Rules, step.Rules},
	}
	for _, t := range texts {
		if !slide.SetText(t.shape, t.text) {
			log.Debug().Str("shape", t.shape).Str("slide", slide.Part()).Msg("Placeholder not on slide, skipped")
		}
	}
}

// WithProcessName returns a builder that also substitutes the process name
// token on the template's own slides.
func (b *Builder) WithProcessName(name string) *Builder {
	return &Builder{cfg: b.cfg, processName: name}
}
