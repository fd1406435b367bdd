package models

import "fmt"

// StepRecord is one parsed process step.
type StepRecord struct {
	Number      string `json:"numero"`
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Rules       string `json:"regras"`
}

// Label is the slide header text for the step.
func (s StepRecord) Label() string {
	return StepLabel(s.Number, s.Name)
}

func StepLabel(number, name string) string {
	return fmt.Sprintf(StepLabelFormat, number, name)
}

// SIPOCBlock holds the raw fields of a matched step block.
type SIPOCBlock struct {
	Number   string
	Name     string
	Supplier string
	Input    string
	Process  string
	Output   string
	Customer string
}

type SlideResult struct {
	SlideIndex int    `json:"slide_index"`
	Label      string `json:"etapa"`
}

type GenerationResult struct {
	Success     bool          `json:"sucesso"`
	Message     string        `json:"mensagem"`
	File        string        `json:"arquivo"`
	ProcessName string        `json:"nome_processo"`
	TotalSteps  int           `json:"total_etapas"`
	Slides      []SlideResult `json:"slides_criados"`
	Steps       []StepRecord  `json:"etapas_processadas"`
	ReportFiles []string      `json:"relatorios,omitempty"`
}

// Failure is the soft validation failure payload.
type Failure struct {
	Error string `json:"erro"`
}
