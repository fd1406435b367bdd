// Package pptxtest writes small presentation templates for tests.
package pptxtest

import (
	"archive/zip"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	relsNS    = `http://schemas.openxmlformats.org/package/2006/relationships`
	relDoc    = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/`
	ctPML     = `application/vnd.openxmlformats-officedocument.presentationml.`
)

const nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

// Placeholder is a layout placeholder. Type uses the PresentationML names
// (body, title, ctrTitle, dt...); Idx 0 is omitted from the XML.
type Placeholder struct {
	Type string
	Idx  int
}

type Layout struct {
	Name         string
	Placeholders []Placeholder
}

// Options describes the template. Slides holds the title text of each
// pre-existing slide.
type Options struct {
	Layouts []Layout
	Slides  []string
}

// DefaultOptions mirrors a DDP template: a title layout and a step layout
// with three body placeholders, plus one cover slide carrying the process
// name token.
func DefaultOptions() Options {
	return Options{
		Layouts: []Layout{
			{
				Name: "Title Slide",
				Placeholders: []Placeholder{
					{Type: "ctrTitle"},
					{Type: "subTitle", Idx: 1},
					{Type: "dt", Idx: 10},
					{Type: "ftr", Idx: 11},
					{Type: "sldNum", Idx: 12},
				},
			},
			{
				Name: "DDP Etapa",
				Placeholders: []Placeholder{
					{Type: "body", Idx: 1},
					{Type: "body", Idx: 2},
					{Type: "body", Idx: 3},
					{Type: "sldNum", Idx: 12},
				},
			},
		},
		Slides: []string{"DDP - {Nome Processo}"},
	}
}

// WriteTemplate writes the template into dir and returns its path.
func WriteTemplate(t testing.TB, dir string, opts Options) string {
	t.Helper()
	path := filepath.Join(dir, "DDP_TEMPLATE.pptx")
	if err := Write(path, opts); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

// Write builds the template package at path.
func Write(path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, part := range parts(opts) {
		w, err := zw.Create(part.name)
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return err
		}
	}
	return zw.Close()
}

type part struct {
	name string
	body string
}

func parts(opts Options) []part {
	var out []part

	var types strings.Builder
	types.WriteString(xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	types.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	types.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	types.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="` + ctPML + `presentation.main+xml"/>`)
	types.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="` + ctPML + `slideMaster+xml"/>`)
	for i := range opts.Layouts {
		fmt.Fprintf(&types, `<Override PartName="/ppt/slideLayouts/slideLayout%d.xml" ContentType="%sslideLayout+xml"/>`, i+1, ctPML)
	}
	for i := range opts.Slides {
		fmt.Fprintf(&types, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="%sslide+xml"/>`, i+1, ctPML)
	}
	types.WriteString(`</Types>`)
	out = append(out, part{"[Content_Types].xml", types.String()})

	out = append(out, part{"_rels/.rels", rels(
		fmt.Sprintf(`<Relationship Id="rId1" Type="%sofficeDocument" Target="ppt/presentation.xml"/>`, relDoc),
	)})

	var pres strings.Builder
	pres.WriteString(xmlHeader + `<p:presentation ` + nsDecl + `>`)
	pres.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if len(opts.Slides) > 0 {
		pres.WriteString(`<p:sldIdLst>`)
		for i := range opts.Slides {
			fmt.Fprintf(&pres, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
		}
		pres.WriteString(`</p:sldIdLst>`)
	}
	pres.WriteString(`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>`)
	out = append(out, part{"ppt/presentation.xml", pres.String()})

	presRels := []string{fmt.Sprintf(`<Relationship Id="rId1" Type="%sslideMaster" Target="slideMasters/slideMaster1.xml"/>`, relDoc)}
	for i := range opts.Slides {
		presRels = append(presRels, fmt.Sprintf(`<Relationship Id="rId%d" Type="%sslide" Target="slides/slide%d.xml"/>`, i+2, relDoc, i+1))
	}
	out = append(out, part{"ppt/_rels/presentation.xml.rels", rels(presRels...)})

	var master strings.Builder
	master.WriteString(xmlHeader + `<p:sldMaster ` + nsDecl + `><p:cSld>` + emptyTree("") + `</p:cSld>`)
	master.WriteString(`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`)
	master.WriteString(`<p:sldLayoutIdLst>`)
	var masterRels []string
	for i := range opts.Layouts {
		fmt.Fprintf(&master, `<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483649+i, i+1)
		masterRels = append(masterRels, fmt.Sprintf(`<Relationship Id="rId%d" Type="%sslideLayout" Target="../slideLayouts/slideLayout%d.xml"/>`, i+1, relDoc, i+1))
	}
	master.WriteString(`</p:sldLayoutIdLst></p:sldMaster>`)
	out = append(out, part{"ppt/slideMasters/slideMaster1.xml", master.String()})
	out = append(out, part{"ppt/slideMasters/_rels/slideMaster1.xml.rels", rels(masterRels...)})

	for i, layout := range opts.Layouts {
		var shapes strings.Builder
		for j, ph := range layout.Placeholders {
			idx := ""
			if ph.Idx != 0 {
				idx = fmt.Sprintf(` idx="%d"`, ph.Idx)
			}
			fmt.Fprintf(&shapes, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s %d"/><p:cNvSpPr/><p:nvPr><p:ph type="%s"%s/></p:nvPr></p:nvSpPr><p:spPr/>`+
				`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
				j+2, ph.Type, j+1, ph.Type, idx, ph.Type)
		}
		body := xmlHeader + `<p:sldLayout ` + nsDecl + `><p:cSld name="` + html.EscapeString(layout.Name) + `">` +
			emptyTree(shapes.String()) + `</p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
		out = append(out,
			part{fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), body},
			part{fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1), rels(
				fmt.Sprintf(`<Relationship Id="rId1" Type="%sslideMaster" Target="../slideMasters/slideMaster1.xml"/>`, relDoc),
			)},
		)
	}

	for i, title := range opts.Slides {
		shape := `<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="ctrTitle"/></p:nvPr></p:nvSpPr><p:spPr/>` +
			`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:t>` + html.EscapeString(title) + `</a:t></a:r></a:p></p:txBody></p:sp>`
		body := xmlHeader + `<p:sld ` + nsDecl + `><p:cSld>` + emptyTree(shape) +
			`</p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`
		out = append(out,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), body},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), rels(
				fmt.Sprintf(`<Relationship Id="rId1" Type="%sslideLayout" Target="../slideLayouts/slideLayout1.xml"/>`, relDoc),
			)},
		)
	}
	return out
}

func emptyTree(shapes string) string {
	return `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		shapes + `</p:spTree>`
}

func rels(entries ...string) string {
	return xmlHeader + `<Relationships xmlns="` + relsNS + `">` + strings.Join(entries, "") + `</Relationships>`
}
