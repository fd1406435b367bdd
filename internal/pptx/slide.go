package pptx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Layout is a slide layout of the first slide master.
type Layout struct {
	Name string
	part string
	doc  *etree.Document
}

// Slide is one slide part of the presentation.
type Slide struct {
	part string
	doc  *etree.Document
}

// latent placeholders stay on the layout and are never copied to slides
var latentPlaceholders = map[string]bool{
	"dt":     true,
	"ftr":    true,
	"sldNum": true,
}

// placeholder types that cannot hold text
var graphicPlaceholders = map[string]bool{
	"pic":     true,
	"chart":   true,
	"tbl":     true,
	"clipArt": true,
	"dgm":     true,
	"media":   true,
	"sldImg":  true,
}

var placeholderBaseNames = map[string]string{
	"title":    "Title",
	"ctrTitle": "Title",
	"subTitle": "Subtitle",
	"body":     "Text Placeholder",
	"obj":      "Content Placeholder",
	"chart":    "Chart Placeholder",
	"tbl":      "Table Placeholder",
	"clipArt":  "Image",
	"dgm":      "SmartArt Placeholder",
	"media":    "Media Placeholder",
	"pic":      "Picture Placeholder",
	"sldImg":   "Slide Image Placeholder",
	"hdr":      "Header Placeholder",
	"dt":       "Date Placeholder",
	"ftr":      "Footer Placeholder",
	"sldNum":   "Slide Number Placeholder",
}

// placeholderName names a cloned placeholder the way PowerPoint-compatible
// tooling does, e.g. "Text Placeholder 2" for the shape with id 3.
func placeholderName(phType, orient string, shapeID int) string {
	base, ok := placeholderBaseNames[phType]
	if !ok {
		base = placeholderBaseNames["obj"]
	}
	if orient == "vert" {
		base = "Vertical " + base
	}
	return fmt.Sprintf("%s %d", base, shapeID-1)
}

// placeholders returns the cloneable placeholder shapes of the layout.
func (l *Layout) placeholders() []*etree.Element {
	var out []*etree.Element
	for _, sp := range l.doc.FindElements("//p:cSld/p:spTree/p:sp") {
		ph := sp.FindElement("./p:nvSpPr/p:nvPr/p:ph")
		if ph == nil {
			continue
		}
		if latentPlaceholders[ph.SelectAttrValue("type", "obj")] {
			continue
		}
		out = append(out, ph)
	}
	return out
}

// AddSlide appends a slide based on the layout at layoutIndex. The slide
// receives a copy of every cloneable placeholder of the layout.
func (p *Presentation) AddSlide(layoutIndex int) (*Slide, error) {
	if layoutIndex < 0 || layoutIndex >= len(p.layouts) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLayoutOutOfRange, layoutIndex, len(p.layouts))
	}
	layout := p.layouts[layoutIndex]

	part := p.nextSlidePart()
	doc := newSlideDocument(layout)
	p.addPart(part, doc)

	slideRels, err := p.rels(part)
	if err != nil {
		return nil, err
	}
	slideRels.add(relTypeSlideLayout, relativeTarget(part, layout.part))

	if err := p.registerSlide(part); err != nil {
		return nil, err
	}

	slide := &Slide{part: part, doc: doc}
	p.slides = append(p.slides, slide)
	return slide, nil
}

func newSlideDocument(layout *Layout) *etree.Document {
	doc := newXMLDocument()
	sld := doc.CreateElement("p:sld")
	sld.CreateAttr("xmlns:a", nsA)
	sld.CreateAttr("xmlns:r", nsR)
	sld.CreateAttr("xmlns:p", nsP)

	spTree := sld.CreateElement("p:cSld").CreateElement("p:spTree")
	nvGrpSpPr := spTree.CreateElement("p:nvGrpSpPr")
	cNvPr := nvGrpSpPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", "1")
	cNvPr.CreateAttr("name", "")
	nvGrpSpPr.CreateElement("p:cNvGrpSpPr")
	nvGrpSpPr.CreateElement("p:nvPr")
	spTree.CreateElement("p:grpSpPr")

	shapeID := 2
	for _, ph := range layout.placeholders() {
		phType := ph.SelectAttrValue("type", "obj")
		name := placeholderName(phType, ph.SelectAttrValue("orient", ""), shapeID)

		sp := spTree.CreateElement("p:sp")
		nvSpPr := sp.CreateElement("p:nvSpPr")
		shapeProps := nvSpPr.CreateElement("p:cNvPr")
		shapeProps.CreateAttr("id", strconv.Itoa(shapeID))
		shapeProps.CreateAttr("name", name)
		nvSpPr.CreateElement("p:cNvSpPr").CreateElement("a:spLocks").CreateAttr("noGrp", "1")
		nvSpPr.CreateElement("p:nvPr").AddChild(ph.Copy())
		sp.CreateElement("p:spPr")
		if !graphicPlaceholders[phType] {
			newTxBody(sp).CreateElement("a:p")
		}
		shapeID++
	}

	sld.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

// registerSlide adds the slide part to the content types, the presentation
// relationships and the slide id list.
func (p *Presentation) registerSlide(part string) error {
	types, err := p.xmlPart(contentTypesPart)
	if err != nil {
		return err
	}
	override := types.Root().CreateElement("Override")
	override.CreateAttr("PartName", "/"+part)
	override.CreateAttr("ContentType", contentTypeSlide)

	presRels, err := p.rels(presentationPart)
	if err != nil {
		return err
	}
	rID := presRels.add(relTypeSlide, relativeTarget(presentationPart, part))

	pres, err := p.xmlPart(presentationPart)
	if err != nil {
		return err
	}
	sldIDLst := pres.FindElement("//p:sldIdLst")
	if sldIDLst == nil {
		sldIDLst = newSlideIDList(pres.Root())
	}

	nextID := firstSlideID
	for _, sldID := range sldIDLst.SelectElements("p:sldId") {
		if id, err := strconv.Atoi(sldID.SelectAttrValue("id", "")); err == nil && id >= nextID {
			nextID = id + 1
		}
	}
	sldID := sldIDLst.CreateElement("p:sldId")
	sldID.CreateAttr("id", strconv.Itoa(nextID))
	sldID.CreateAttr("r:id", rID)
	return nil
}

// newSlideIDList inserts an empty p:sldIdLst right after the master id lists,
// where the presentation schema expects it.
func newSlideIDList(root *etree.Element) *etree.Element {
	lst := etree.NewElement("p:sldIdLst")
	index := 0
	for _, tag := range []string{"p:sldMasterIdLst", "p:notesMasterIdLst", "p:handoutMasterIdLst"} {
		if el := root.SelectElement(tag); el != nil && el.Index()+1 > index {
			index = el.Index() + 1
		}
	}
	root.InsertChildAt(index, lst)
	return lst
}

// Part returns the package part name of the slide.
func (s *Slide) Part() string {
	return s.part
}

// ShapeNames lists the names of the slide's shapes in document order.
func (s *Slide) ShapeNames() []string {
	var names []string
	for _, cNvPr := range s.doc.FindElements("//p:spTree/p:sp/p:nvSpPr/p:cNvPr") {
		names = append(names, cNvPr.SelectAttrValue("name", ""))
	}
	return names
}

// SetText replaces the text of the shape called name, one paragraph per
// line. It reports false when the slide has no such shape.
func (s *Slide) SetText(name, text string) bool {
	sp := s.shape(name)
	if sp == nil {
		return false
	}
	txBody := sp.SelectElement("p:txBody")
	if txBody == nil {
		txBody = newTxBody(sp)
	}
	for _, para := range txBody.SelectElements("a:p") {
		txBody.RemoveChild(para)
	}
	for _, line := range strings.Split(text, "\n") {
		para := txBody.CreateElement("a:p")
		if line == "" {
			continue
		}
		para.CreateElement("a:r").CreateElement("a:t").SetText(line)
	}
	return true
}

// Text returns the shape's paragraphs joined by newlines.
func (s *Slide) Text(name string) (string, bool) {
	sp := s.shape(name)
	if sp == nil {
		return "", false
	}
	var lines []string
	for _, para := range sp.FindElements("./p:txBody/a:p") {
		var line strings.Builder
		for _, t := range para.FindElements(".//a:t") {
			line.WriteString(t.Text())
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n"), true
}

func (s *Slide) shape(name string) *etree.Element {
	for _, sp := range s.doc.FindElements("//p:spTree/p:sp") {
		cNvPr := sp.FindElement("./p:nvSpPr/p:cNvPr")
		if cNvPr != nil && cNvPr.SelectAttrValue("name", "") == name {
			return sp
		}
	}
	return nil
}

func (s *Slide) replaceText(token, value string) int {
	changed := 0
	for _, t := range s.doc.FindElements("//a:t") {
		if text := t.Text(); strings.Contains(text, token) {
			t.SetText(strings.ReplaceAll(text, token, value))
			changed++
		}
	}
	return changed
}

// newTxBody appends a text body without paragraphs to sp.
func newTxBody(sp *etree.Element) *etree.Element {
	txBody := sp.CreateElement("p:txBody")
	txBody.CreateElement("a:bodyPr")
	txBody.CreateElement("a:lstStyle")
	return txBody
}
