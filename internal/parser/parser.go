package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"ddp-generator/internal/models"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

var (
	xmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	slideFileRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
)

// LoadStepText reads step text from a file, picking the reader by extension.
// Spreadsheets are expected to hold one step per row in SIPOC column order.
func LoadStepText(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	log.Debug().Str("file", filePath).Str("ext", ext).Msg("Loading step text")

	switch ext {
	case ".txt", ".md", "":
		return parseText(filePath)
	case ".docx":
		return parseDOCX(filePath)
	case ".pdf":
		return parsePDF(filePath)
	case ".pptx":
		return parsePPTX(filePath)
	case ".xlsx":
		return parseXLSX(filePath)
	case ".xlsm", ".xltx", ".xltm":
		return parseExcelize(filePath)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return normalizeNewlines(string(data)), nil
}

func parseDOCX(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	return textFromWordML(r.Editable().GetContent()), nil
}

// textFromWordML flattens document.xml into one line per paragraph.
func textFromWordML(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content))
}

func parsePDF(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		var lines []string
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			lines = append(lines, line.String())
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return strings.Join(pages, "\n"), nil
}

func parsePPTX(filePath string) (string, error) {
	f, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	type slideText struct {
		num  int
		text string
	}
	var slides []slideText
	for _, file := range f.File {
		m := slideFileRe.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		num, _ := strconv.Atoi(m[1])
		slides = append(slides, slideText{num: num, text: extractTextFromXML(string(data))})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var parts []string
	for _, s := range slides {
		if strings.TrimSpace(s.text) != "" {
			parts = append(parts, s.text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// extractTextFromXML returns the <a:t> runs of a slide, one line per paragraph.
func extractTextFromXML(xmlContent string) string {
	var lines []string
	for _, para := range strings.Split(xmlContent, "</a:p>") {
		var text strings.Builder
		parts := strings.Split(para, "<a:t>")
		for i, part := range parts {
			if i == 0 {
				continue
			}
			endIdx := strings.Index(part, "</a:t>")
			if endIdx >= 0 {
				text.WriteString(html.UnescapeString(part[:endIdx]))
			}
		}
		if len(parts) > 1 {
			lines = append(lines, text.String())
		}
	}
	return strings.Join(lines, "\n")
}

func parseXLSX(filePath string) (string, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return "", err
	}
	if len(f.Sheets) == 0 {
		return "", nil
	}

	sheet := f.Sheets[0]
	if s, ok := f.Sheet[models.SIPOCSheetName]; ok {
		sheet = s
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		var cells []string
		for _, cell := range row.Cells {
			cells = append(cells, cell.String())
		}
		rows = append(rows, cells)
	}
	return rowsToStepText(rows), nil
}

func parseExcelize(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}
	sheetName := sheets[0]
	if idx, err := f.GetSheetIndex(models.SIPOCSheetName); err == nil && idx >= 0 {
		sheetName = models.SIPOCSheetName
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", err
	}
	return rowsToStepText(rows), nil
}

// rowsToStepText renders SIPOC rows back into step block text. A header row
// starting with "Etapa" and blank rows are skipped.
func rowsToStepText(rows [][]string) string {
	var blocks []string
	for _, row := range rows {
		cells := make([]string, len(models.SIPOCColumns))
		for i := range cells {
			if i < len(row) {
				cells[i] = strings.TrimSpace(row[i])
			}
		}
		if strings.Join(cells, "") == "" {
			continue
		}
		if strings.EqualFold(cells[0], models.SIPOCColumns[0]) {
			continue
		}
		blocks = append(blocks, FormatBlock(models.SIPOCBlock{
			Number:   cells[0],
			Name:     cells[1],
			Supplier: cells[2],
			Input:    cells[3],
			Process:  cells[4],
			Output:   cells[5],
			Customer: cells[6],
		}))
	}
	return strings.Join(blocks, "\n")
}

// FormatBlock writes a block in the text shape the step extractor reads.
func FormatBlock(b models.SIPOCBlock) string {
	var sb strings.Builder
	sb.WriteString("# " + models.StepLabel(b.Number, b.Name) + "\n")
	sb.WriteString(models.SupplierLabel + b.Supplier + "\n")
	sb.WriteString(models.InputLabel + b.Input + "\n")
	sb.WriteString(models.ProcessLabel + b.Process + "\n")
	sb.WriteString(models.OutputLabel + b.Output + "\n")
	sb.WriteString(models.CustomerLabel + b.Customer)
	return sb.String()
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
