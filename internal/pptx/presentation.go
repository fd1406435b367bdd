// Package pptx edits PresentationML packages: it opens a template, lists the
// layouts of its first slide master, adds slides cloned from a layout, sets
// shape text and writes the package back to disk.
package pptx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"
)

const (
	contentTypesPart = "[Content_Types].xml"
	presentationPart = "ppt/presentation.xml"
	slidesDir        = "ppt/slides"

	contentTypeSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"

	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"

	firstSlideID = 256
)

var (
	ErrInvalidPackage   = errors.New("invalid presentation package")
	ErrLayoutOutOfRange = errors.New("slide layout index out of range")
	slidePartRe         = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
)

// Presentation is an in-memory presentation package.
type Presentation struct {
	order []string                   // part names in package order
	raw   map[string][]byte          // parts never parsed
	docs  map[string]*etree.Document // parsed parts, written back on Save

	layouts []*Layout
	slides  []*Slide
}

// Open reads the presentation package at filePath.
func Open(filePath string) (*Presentation, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	p := &Presentation{
		raw:  make(map[string][]byte),
		docs: make(map[string]*etree.Document),
	}
	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", file.Name, err)
		}
		p.order = append(p.order, file.Name)
		p.raw[file.Name] = data
	}

	if err := p.load(); err != nil {
		return nil, err
	}
	log.Debug().
		Str("template", filePath).
		Int("layouts", len(p.layouts)).
		Int("slides", len(p.slides)).
		Msg("Opened presentation")
	return p, nil
}

func (p *Presentation) load() error {
	pres, err := p.xmlPart(presentationPart)
	if err != nil {
		return err
	}
	presRels, err := p.rels(presentationPart)
	if err != nil {
		return err
	}

	masterID := pres.FindElement("//p:sldMasterIdLst/p:sldMasterId")
	if masterID == nil {
		return fmt.Errorf("%w: no slide master", ErrInvalidPackage)
	}
	masterPart, ok := presRels.target(presentationPart, masterID.SelectAttrValue("r:id", ""))
	if !ok {
		return fmt.Errorf("%w: dangling slide master relationship", ErrInvalidPackage)
	}
	if err := p.loadLayouts(masterPart); err != nil {
		return err
	}

	for _, sldID := range pres.FindElements("//p:sldIdLst/p:sldId") {
		part, ok := presRels.target(presentationPart, sldID.SelectAttrValue("r:id", ""))
		if !ok {
			return fmt.Errorf("%w: dangling slide relationship", ErrInvalidPackage)
		}
		doc, err := p.xmlPart(part)
		if err != nil {
			return err
		}
		p.slides = append(p.slides, &Slide{part: part, doc: doc})
	}
	return nil
}

func (p *Presentation) loadLayouts(masterPart string) error {
	master, err := p.xmlPart(masterPart)
	if err != nil {
		return err
	}
	masterRels, err := p.rels(masterPart)
	if err != nil {
		return err
	}
	for _, layoutID := range master.FindElements("//p:sldLayoutIdLst/p:sldLayoutId") {
		part, ok := masterRels.target(masterPart, layoutID.SelectAttrValue("r:id", ""))
		if !ok {
			return fmt.Errorf("%w: dangling slide layout relationship", ErrInvalidPackage)
		}
		doc, err := p.xmlPart(part)
		if err != nil {
			return err
		}
		name := ""
		if cSld := doc.FindElement("//p:cSld"); cSld != nil {
			name = cSld.SelectAttrValue("name", "")
		}
		p.layouts = append(p.layouts, &Layout{Name: name, part: part, doc: doc})
	}
	return nil
}

// Layouts returns the slide layouts of the first slide master in order.
func (p *Presentation) Layouts() []*Layout {
	return p.layouts
}

// Slides returns the slides in presentation order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// ReplaceText substitutes token with value in every text run of the
// existing slides and returns the number of runs changed.
func (p *Presentation) ReplaceText(token, value string) int {
	if token == "" {
		return 0
	}
	changed := 0
	for _, s := range p.slides {
		changed += s.replaceText(token, value)
	}
	return changed
}

// Save writes the package to filePath.
func (p *Presentation) Save(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(f)
	for _, name := range p.order {
		data, err := p.partBytes(name)
		if err != nil {
			zw.Close()
			f.Close()
			return err
		}
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("failed to write part %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("failed to write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (p *Presentation) partBytes(name string) ([]byte, error) {
	if doc, ok := p.docs[name]; ok {
		data, err := doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize part %s: %w", name, err)
		}
		return data, nil
	}
	return p.raw[name], nil
}

// xmlPart returns the parsed document of an existing part.
func (p *Presentation) xmlPart(name string) (*etree.Document, error) {
	if doc, ok := p.docs[name]; ok {
		return doc, nil
	}
	data, ok := p.raw[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrInvalidPackage, name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse part %s: %w", name, err)
	}
	p.docs[name] = doc
	delete(p.raw, name)
	return doc, nil
}

// rels returns the relationships of part, creating an empty set if the
// part has none yet.
func (p *Presentation) rels(part string) (*relationships, error) {
	name := relsPartFor(part)
	if _, ok := p.docs[name]; !ok {
		if _, ok := p.raw[name]; !ok {
			r := newRelationships(name)
			p.addPart(name, r.doc)
			return r, nil
		}
	}
	doc, err := p.xmlPart(name)
	if err != nil {
		return nil, err
	}
	return &relationships{part: name, doc: doc}, nil
}

func (p *Presentation) addPart(name string, doc *etree.Document) {
	if _, ok := p.docs[name]; !ok {
		if _, ok := p.raw[name]; !ok {
			p.order = append(p.order, name)
		}
	}
	delete(p.raw, name)
	p.docs[name] = doc
}

// nextSlidePart numbers a new slide part above every existing one.
func (p *Presentation) nextSlidePart() string {
	var nums []int
	for _, name := range p.order {
		if m := slidePartRe.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	next := 1
	if len(nums) > 0 {
		next = nums[len(nums)-1] + 1
	}
	return path.Join(slidesDir, fmt.Sprintf("slide%d.xml", next))
}
