package deck

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ddp-generator/internal/config"
	"ddp-generator/internal/models"
	"ddp-generator/internal/pptx"
	"ddp-generator/internal/pptx/pptxtest"
)

var testSteps = []models.StepRecord{
	{
		Number:      "1",
		Name:        "Receber Pedido",
		Description: "Esta etapa envolve validar dados",
		Rules:       "Input: Pedido\nOutput: Pedido validado\nSupplier: Cliente\nCustomer: Financeiro",
	},
	{
		Number:      "2",
		Name:        "Faturar",
		Description: "Esta etapa envolve emitir nota",
		Rules:       "Input: Pedido validado\nOutput: Nota fiscal\nSupplier: Comercial\nCustomer: Cliente",
	},
}

func TestBuildFillsOneSlidePerStep(t *testing.T) {
	template := pptxtest.WriteTemplate(t, t.TempDir(), pptxtest.DefaultOptions())

	presentation, slides, err := NewBuilder(config.DefaultConfig()).Build(testSteps, template)
	require.NoError(t, err)
	require.Len(t, slides, len(testSteps))

	// the template already holds a cover slide
	assert.Equal(t, models.SlideResult{SlideIndex: 1, Label: "ETAPA 1 - Receber Pedido"}, slides[0])
	assert.Equal(t, models.SlideResult{SlideIndex: 2, Label: "ETAPA 2 - Faturar"}, slides[1])

	all := presentation.Slides()
	require.Len(t, all, 3)
	for i, step := range testSteps {
		slide := all[i+1]
		header, _ := slide.Text("Text Placeholder 2")
		description, _ := slide.Text("Text Placeholder 3")
		rules, _ := slide.Text("Text Placeholder 1")
		assert.Equal(t, step.Label(), header)
		assert.Equal(t, step.Description, description)
		assert.Equal(t, step.Rules, rules)
	}
}

func TestBuildTemplateNotFound(t *testing.T) {
	_, _, err := NewBuilder(nil).Build(testSteps, filepath.Join(t.TempDir(), "missing.pptx"))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestBuildSkipsMissingPlaceholders(t *testing.T) {
	opts := pptxtest.DefaultOptions()
	opts.Layouts[1].Placeholders = []pptxtest.Placeholder{{Type: "body", Idx: 1}}
	template := pptxtest.WriteTemplate(t, t.TempDir(), opts)

	presentation, slides, err := NewBuilder(nil).Build(testSteps[:1], template)
	require.NoError(t, err)
	require.Len(t, slides, 1)

	slide := presentation.Slides()[1]
	assert.Equal(t, []string{"Text Placeholder 1"}, slide.ShapeNames())
	rules, _ := slide.Text("Text Placeholder 1")
	assert.Equal(t, testSteps[0].Rules, rules)
}

func TestBuildCustomPlaceholderNamesAndLayout(t *testing.T) {
	template := pptxtest.WriteTemplate(t, t.TempDir(), pptxtest.DefaultOptions())
	cfg := config.DefaultConfig()
	layout := 0
	cfg.LayoutIndex = &layout
	cfg.Placeholders.Header = "Title 1"
	cfg.Placeholders.Description = "Subtitle 2"

	presentation, _, err := NewBuilder(cfg).Build(testSteps[:1], template)
	require.NoError(t, err)

	slide := presentation.Slides()[1]
	title, _ := slide.Text("Title 1")
	subtitle, _ := slide.Text("Subtitle 2")
	assert.Equal(t, "ETAPA 1 - Receber Pedido", title)
	assert.Equal(t, "Esta etapa envolve validar dados", subtitle)
}

func TestBuildLayoutOutOfRangeKeepsPartialDeck(t *testing.T) {
	template := pptxtest.WriteTemplate(t, t.TempDir(), pptxtest.DefaultOptions())
	cfg := config.DefaultConfig()
	layout := 7
	cfg.LayoutIndex = &layout

	presentation, slides, err := NewBuilder(cfg).Build(testSteps, template)
	assert.ErrorIs(t, err, pptx.ErrLayoutOutOfRange)
	require.NotNil(t, presentation)
	assert.Empty(t, slides)
	assert.Equal(t, 1, presentation.SlideCount())
}

func TestBuildWithProcessName(t *testing.T) {
	template := pptxtest.WriteTemplate(t, t.TempDir(), pptxtest.DefaultOptions())

	presentation, _, err := NewBuilder(nil).WithProcessName("Vendas").Build(testSteps[:1], template)
	require.NoError(t, err)

	cover, _ := presentation.Slides()[0].Text("Title 1")
	assert.Equal(t, "DDP - Vendas", cover)
}
