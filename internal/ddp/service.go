package ddp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"ddp-generator/internal/config"
	"ddp-generator/internal/deck"
	"ddp-generator/internal/helper"
	"ddp-generator/internal/models"
	"ddp-generator/internal/parser"
	"ddp-generator/internal/report"
)

// Request carries the inputs of one criar_ddp call.
type Request struct {
	StepText    string `json:"texto_etapas"`
	ProcessName string `json:"nome_processo"`
	OutputDir   string `json:"diretorio_saida"`
	FileName    string `json:"nome_arquivo,omitempty"`
}

// Response holds either the generation result or a soft failure.
type Response struct {
	Result  *models.GenerationResult
	Failure *models.Failure
}

// Payload returns the value to serialize back to the caller.
func (r *Response) Payload() interface{} {
	if r.Failure != nil {
		return r.Failure
	}
	return r.Result
}

type Service struct {
	cfg       *config.Config
	extractor *parser.StepExtractor
	builder   *deck.Builder
}

func NewService(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	extractor, err := parser.NewStepExtractor(cfg.StepPattern)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:       cfg,
		extractor: extractor,
		builder:   deck.NewBuilder(cfg),
	}, nil
}

func softFailure(msg string) *Response {
	return &Response{Failure: &models.Failure{Error: msg}}
}

// Create parses the step text, builds the deck and saves it under a unique
// name in the output directory. Input problems come back as a soft failure;
// a missing template or an I/O error is returned as an error.
func (s *Service) Create(ctx context.Context, req Request) (*Response, error) {
	runID, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}
	logger := log.With().Str("run_id", runID).Str("process", req.ProcessName).Logger()

	blocks := s.extractor.Blocks(req.StepText)
	if len(blocks) == 0 {
		logger.Warn().Msg("No valid step found")
		return softFailure(models.MsgNoValidSteps), nil
	}
	if strings.TrimSpace(req.ProcessName) == "" {
		return softFailure(fmt.Sprintf(models.MsgMissingField, "nome_processo")), nil
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return softFailure(fmt.Sprintf(models.MsgMissingField, "diretorio_saida")), nil
	}

	steps := make([]models.StepRecord, 0, len(blocks))
	for _, b := range blocks {
		steps = append(steps, parser.NewStepRecord(b))
	}
	logger.Info().Int("steps", len(steps)).Msg("Parsed steps")

	presentation, slides, err := s.builder.WithProcessName(req.ProcessName).Build(steps, s.cfg.TemplatePath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, ext := s.fileName(req)
	name, err := helper.ResolveUniquePath(req.OutputDir, base, ext)
	if err != nil {
		return nil, err
	}
	outPath := filepath.Join(req.OutputDir, name)
	if err := presentation.Save(outPath); err != nil {
		return nil, fmt.Errorf("failed to save presentation %s: %w", outPath, err)
	}
	logger.Info().Str("file", outPath).Int("slides", len(slides)).Msg("Saved presentation")

	result := &models.GenerationResult{
		Success:     true,
		Message:     models.MsgSuccess,
		File:        outPath,
		ProcessName: req.ProcessName,
		TotalSteps:  len(steps),
		Slides:      slides,
		Steps:       steps,
	}

	if s.cfg.Reports.Enabled {
		files, err := s.writeReports(outPath, req.ProcessName, blocks, result)
		if err != nil {
			return nil, err
		}
		result.ReportFiles = files
	}

	return &Response{Result: result}, nil
}

// fileName picks the base name and extension for the deck. A caller
// supplied extension is kept; otherwise the configured one is used.
func (s *Service) fileName(req Request) (string, string) {
	if req.FileName == "" {
		return helper.DefaultBaseName(s.cfg.FilePrefix, req.ProcessName), s.cfg.FileExtension
	}
	return helper.SplitFileName(req.FileName, s.cfg.FileExtension)
}

// writeReports stores the SIPOC workbook and the HTML summary beside the deck.
func (s *Service) writeReports(deckPath, processName string, blocks []models.SIPOCBlock, result *models.GenerationResult) ([]string, error) {
	base := strings.TrimSuffix(deckPath, filepath.Ext(deckPath))
	sipocPath := base + models.SIPOCFileSuffix
	htmlPath := base + models.ReportFileSuffix

	if err := report.WriteSIPOC(sipocPath, processName, blocks); err != nil {
		return nil, err
	}
	if err := report.WriteHTML(htmlPath, result); err != nil {
		return nil, err
	}
	log.Debug().Str("sipoc", sipocPath).Str("html", htmlPath).Msg("Wrote reports")
	return []string{sipocPath, htmlPath}, nil
}
