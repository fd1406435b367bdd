package pptx

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	nsPackageRels = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
)

// relationships wraps one .rels part.
type relationships struct {
	part string
	doc  *etree.Document
}

func newRelationships(part string) *relationships {
	doc := newXMLDocument()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsPackageRels)
	return &relationships{part: part, doc: doc}
}

// relsPartFor returns the .rels part name that belongs to part.
func relsPartFor(part string) string {
	dir, base := path.Split(part)
	return path.Join(dir, "_rels", base+".rels")
}

// target returns the package part name a relationship id points to.
// source is the part owning the relationships.
func (r *relationships) target(source, id string) (string, bool) {
	for _, rel := range r.doc.Root().SelectElements("Relationship") {
		if rel.SelectAttrValue("Id", "") != id {
			continue
		}
		return resolvePart(source, rel.SelectAttrValue("Target", "")), true
	}
	return "", false
}

// add appends a relationship and returns its new id.
func (r *relationships) add(relType, target string) string {
	id := fmt.Sprintf("rId%d", r.maxID()+1)
	rel := r.doc.Root().CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)
	return id
}

func (r *relationships) maxID() int {
	highest := 0
	for _, rel := range r.doc.Root().SelectElements("Relationship") {
		id := strings.TrimPrefix(rel.SelectAttrValue("Id", ""), "rId")
		if n, err := strconv.Atoi(id); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// resolvePart turns a relationship target into an absolute part name
// without the leading slash.
func resolvePart(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

// relativeTarget is the inverse of resolvePart for parts inside the package.
func relativeTarget(source, part string) string {
	from := strings.Split(path.Dir(source), "/")
	to := strings.Split(part, "/")
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	var segs []string
	for range from[i:] {
		segs = append(segs, "..")
	}
	segs = append(segs, to[i:]...)
	return strings.Join(segs, "/")
}

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}
