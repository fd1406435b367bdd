package models

// StepRegex matches one step block. Every field is lazy and may span lines,
// but never past a line starting with '#', so a malformed block cannot borrow
// labels from the block after it.
const StepRegex = `# ETAPA (\d+) - (` + stepField + `)\nSupplier: (` + stepField + `)\nInput: (` + stepField +
	`)\nProcess: (` + stepField + `)\nOutput: (` + stepField + `)\nCustomer: (` + stepField + `)(?=\n#|$)`

// LegacyStepRegex lets fields run across block boundaries.
const LegacyStepRegex = `# ETAPA (\d+) - (.+?)\nSupplier: (.+?)\nInput: (.+?)\nProcess: (.+?)\nOutput: (.+?)\nCustomer: (.+?)(?=\n#|$)`

const stepField = `(?:(?!\n#).)+?`

const (
	DescriptionPrefix = "Esta etapa envolve "
	StepLabelFormat   = "ETAPA %s - %s"

	InputLabel    = "Input: "
	OutputLabel   = "Output: "
	SupplierLabel = "Supplier: "
	CustomerLabel = "Customer: "
	ProcessLabel  = "Process: "

	HeaderPlaceholder      = "Text Placeholder 2"
	DescriptionPlaceholder = "Text Placeholder 3"
	RulesPlaceholder       = "Text Placeholder 1"
	ProcessNameToken       = "{Nome Processo}"
)

const (
	MsgSuccess       = "Apresentação DDP criada com sucesso!"
	MsgNoValidSteps  = "Nenhuma etapa válida encontrada no texto fornecido. Verifique o formato."
	MsgMissingField  = "Parâmetro obrigatório não informado: %s"
	SIPOCSheetName   = "SIPOC"
	SIPOCFileSuffix  = "_SIPOC.xlsx"
	ReportFileSuffix = ".html"
)

// SIPOCColumns is the header row of SIPOC sheets, both read and written.
var SIPOCColumns = []string{"Etapa", "Nome", "Supplier", "Input", "Process", "Output", "Customer"}
