package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ddp-generator/internal/config"
	"ddp-generator/internal/ddp"
	"ddp-generator/internal/deck"
	"ddp-generator/internal/helper"
	"ddp-generator/internal/parser"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the YAML config file")
	processName := flag.String("process", "", "Process name (nome_processo)")
	outputDir := flag.String("out", "", "Output directory (diretorio_saida), defaults to the configured one")
	text := flag.String("text", "", "Step text (texto_etapas)")
	filePath := flag.String("file", "", "Read the step text from a .txt, .md, .docx, .pdf, .pptx or spreadsheet file")
	fileName := flag.String("name", "", "Output file name (nome_arquivo)")
	reports := flag.Bool("reports", false, "Also write the SIPOC workbook and the HTML summary")
	quiet := flag.Bool("quiet", false, "Only log warnings and errors")
	flag.Parse()

	if *quiet {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if *text != "" && *filePath != "" {
		log.Fatal().Msg("Please provide the steps either with -text or with -file, but not both")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if *reports {
		cfg.Reports.Enabled = true
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")

	stepText := *text
	if *filePath != "" {
		stepText, err = parser.LoadStepText(*filePath)
		if err != nil {
			log.Fatal().Err(err).Str("file", *filePath).Msg("Error reading step file")
		}
	}

	dir := *outputDir
	if dir == "" {
		dir = cfg.DefaultOutputDir
	}

	createDDP(context.Background(), cfg, ddp.Request{
		StepText:    stepText,
		ProcessName: *processName,
		OutputDir:   dir,
		FileName:    *fileName,
	})
}

func createDDP(ctx context.Context, cfg *config.Config, req ddp.Request) {
	service, err := ddp.NewService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating DDP service")
	}

	resp, err := service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, deck.ErrTemplateNotFound) {
			log.Fatal().Err(err).Str("template", cfg.TemplatePath).Msg("Template not found")
		}
		log.Fatal().Err(err).Msg("Error creating DDP")
	}

	helper.PrettyPrint(resp.Payload())
	if resp.Failure != nil {
		os.Exit(2)
	}
}
