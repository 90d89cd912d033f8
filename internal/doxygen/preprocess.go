package doxygen

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/doxfix/internal/config"
	"git.home.luguber.info/inful/doxfix/internal/symbols"
)

// implFile identifies one implementation header by source path, basename and
// mangled compound id.
type implFile struct {
	path     string
	filename string
	id       string
}

// implHeader is one public header together with the implementation headers
// whose documentation it absorbs.
type implHeader struct {
	path     string
	filename string
	id       string
	impls    []implFile
}

// Preprocessor rewrites the extractor's XML before HTML generation and
// collects the project's real symbols into the classifier's sets. It runs
// single-threaded, before any concurrent work.
type Preprocessor struct {
	sets *symbols.Sets
	cfg  *config.Config

	inlineNamespaceIDs []string
	headers            []*implHeader
	byImplID           map[string]*implHeader
	innerNamespaces    map[string][]*XMLNode
	sectionDefs        map[string][]*XMLNode
	extracted          bool
}

// NewPreprocessor prepares a preprocessor populating sets in place.
func NewPreprocessor(sets *symbols.Sets, cfg *config.Config) *Preprocessor {
	p := &Preprocessor{
		sets:            sets,
		cfg:             cfg,
		byImplID:        make(map[string]*implHeader),
		innerNamespaces: make(map[string][]*XMLNode),
		sectionDefs:     make(map[string][]*XMLNode),
	}
	for _, ns := range cfg.InlineNamespaces {
		p.inlineNamespaceIDs = append(p.inlineNamespaceIDs, "namespace"+MangleName(ns))
	}
	for _, ih := range cfg.ImplementationHeaders {
		h := &implHeader{
			path:     ih.Header,
			filename: filepath.Base(ih.Header),
			id:       MangleName(filepath.Base(ih.Header)),
		}
		for _, impl := range ih.Implementations {
			f := implFile{path: impl, filename: filepath.Base(impl), id: MangleName(filepath.Base(impl))}
			h.impls = append(h.impls, f)
			p.byImplID[f.id] = h
		}
		p.headers = append(p.headers, h)
	}
	return p
}

// Run processes every XML file in dir.
func (p *Preprocessor) Run(dir string) error {
	files, err := xmlFiles(dir)
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := p.processFile(file); err != nil {
			return err
		}
	}
	if p.extracted {
		if err := p.mergeExtracted(dir); err != nil {
			return err
		}
	}
	if len(p.headers) > 0 {
		p.deleteImplementationFiles(dir)
		if err := p.relink(dir); err != nil {
			return err
		}
	}
	return nil
}

func xmlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read xml directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".xml") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (p *Preprocessor) processFile(path string) error {
	slog.Debug("Pre-processing", "file", path)
	root, err := LoadXML(path)
	if err != nil {
		return err
	}
	changed := false
	if root.Name == "doxygenindex" {
		p.collectIndexSymbols(root)
	} else {
		compound := root.First("compounddef")
		if compound == nil {
			return nil
		}
		changed = p.processCompound(compound)
	}
	if changed {
		if err := WriteXML(path, root); err != nil {
			return err
		}
	}
	return nil
}

// collectIndexSymbols populates the symbol sets with every namespace, class,
// struct and union in the index, plus their scope-qualified nested enums,
// enum values and typedefs. Discovered names are literal, so they are
// regex-quoted before joining the pattern sets.
func (p *Preprocessor) collectIndexSymbols(index *XMLNode) {
	for _, compound := range index.Elements("compound") {
		kind := compound.Attr("kind")
		switch kind {
		case "namespace", "class", "struct", "union":
		default:
			continue
		}
		scopeName := compound.ChildText("name")
		if scopeName == "" {
			continue
		}
		if kind == "namespace" {
			p.sets.Namespaces.Add(regexp.QuoteMeta(scopeName))
		} else {
			p.sets.Types.Add(regexp.QuoteMeta(scopeName))
		}
		enumName := ""
		for _, member := range compound.Elements("member") {
			switch member.Attr("kind") {
			case "enum":
				enumName = scopeName + "::" + member.ChildText("name")
				p.sets.Types.Add(regexp.QuoteMeta(enumName))
			case "enumvalue":
				if enumName != "" {
					p.sets.Enums.Add(regexp.QuoteMeta(enumName + "::" + member.ChildText("name")))
				}
			case "typedef":
				p.sets.Types.Add(regexp.QuoteMeta(scopeName + "::" + member.ChildText("name")))
			}
		}
	}
}

func (p *Preprocessor) processCompound(compound *XMLNode) bool {
	changed := false
	kind := compound.Attr("kind")

	// Merge sibling user-defined sections sharing a heading.
	switch kind {
	case "namespace", "class", "struct", "enum", "file":
		if p.mergeUserSections(compound) {
			changed = true
		}
	}

	// Mark designated namespaces inline.
	if kind == "namespace" {
		for _, nsid := range p.inlineNamespaceIDs {
			if compound.Attr("id") == nsid {
				compound.SetAttr("inline", "yes")
				changed = true
				break
			}
		}
	}

	// Elide implementation headers from directory listings.
	if kind == "dir" && len(p.headers) > 0 {
		for _, innerfile := range compound.Elements("innerfile") {
			if _, ok := p.byImplID[innerfile.Attr("refid")]; ok {
				compound.Remove(innerfile)
				changed = true
			}
		}
	}

	if kind == "file" && len(p.headers) > 0 {
		// Include-graph data is not used by the renderer.
		for _, name := range []string{"includes", "includedby", "incdepgraph", "invincdepgraph"} {
			for _, junk := range compound.Elements(name) {
				compound.Remove(junk)
				changed = true
			}
		}

		// Rip the namespace and section data out of implementation headers;
		// it is merged into the public header afterwards.
		if h, ok := p.byImplID[compound.Attr("id")]; ok {
			for _, ns := range compound.Elements("innernamespace") {
				p.innerNamespaces[h.id] = append(p.innerNamespaces[h.id], ns)
				compound.Remove(ns)
				p.extracted = true
				changed = true
			}
			for _, section := range compound.Elements("sectiondef") {
				p.sectionDefs[h.id] = append(p.sectionDefs[h.id], section)
				compound.Remove(section)
				p.extracted = true
				changed = true
			}
		}
	}

	return changed
}

// mergeUserSections coalesces user-defined sections with identical headings
// into the first occurrence.
func (p *Preprocessor) mergeUserSections(compound *XMLNode) bool {
	byHeader := make(map[string][]*XMLNode)
	var order []string
	for _, section := range compound.Elements("sectiondef") {
		if section.Attr("kind") != "user-defined" {
			continue
		}
		header := section.ChildText("header")
		if header == "" {
			continue
		}
		if _, ok := byHeader[header]; !ok {
			order = append(order, header)
		}
		byHeader[header] = append(byHeader[header], section)
	}
	changed := false
	for _, header := range order {
		group := byHeader[header]
		if len(group) < 2 {
			continue
		}
		first := group[0]
		for _, section := range group[1:] {
			for _, member := range section.Elements("memberdef") {
				section.Remove(member)
				first.Append(member)
			}
			compound.Remove(section)
			changed = true
		}
	}
	return changed
}

// mergeExtracted relocates the collected implementation-header namespaces
// and sections into each public header, merging sections by kind and
// de-duplicating members by id.
func (p *Preprocessor) mergeExtracted(dir string) error {
	for _, h := range p.headers {
		path := filepath.Join(dir, h.id+".xml")
		slog.Info("Merging implementation nodes", "file", path)
		root, err := LoadXML(path)
		if err != nil {
			return err
		}
		compound := root.First("compounddef")
		if compound == nil {
			return fmt.Errorf("%s: missing compounddef", path)
		}
		changed := false

		existing := compound.Elements("innernamespace")
		for _, ns := range p.innerNamespaces[h.id] {
			matched := false
			for _, have := range existing {
				if have.Attr("refid") == ns.Attr("refid") {
					matched = true
					break
				}
			}
			if !matched {
				compound.Append(ns)
				existing = append(existing, ns)
				changed = true
			}
		}

		sections := compound.Elements("sectiondef")
		for _, newSection := range p.sectionDefs[h.id] {
			var target *XMLNode
			for _, have := range sections {
				if have.Attr("kind") == newSection.Attr("kind") {
					target = have
					break
				}
			}
			if target == nil {
				compound.Append(newSection)
				sections = append(sections, newSection)
				changed = true
				continue
			}
			members := target.Elements("memberdef")
			for _, newMember := range newSection.Elements("memberdef") {
				dup := false
				for _, have := range members {
					if have.Attr("id") == newMember.Attr("id") {
						dup = true
						break
					}
				}
				if !dup {
					newSection.Remove(newMember)
					target.Append(newMember)
					members = append(members, newMember)
					changed = true
				}
			}
		}

		if changed {
			if err := WriteXML(path, root); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Preprocessor) deleteImplementationFiles(dir string) {
	for _, h := range p.headers {
		for _, impl := range h.impls {
			path := filepath.Join(dir, impl.id+".xml")
			if _, err := os.Stat(path); err == nil {
				slog.Info("Deleting", "file", path)
				_ = os.Remove(path)
			}
		}
	}
}

// relink rewrites remaining compound references and paths pointing at
// implementation headers so they target the public header instead.
func (p *Preprocessor) relink(dir string) error {
	files, err := xmlFiles(dir)
	if err != nil {
		return err
	}
	for _, file := range files {
		slog.Debug("Re-linking implementation headers", "file", file)
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		text := string(data)
		for _, h := range p.headers {
			for _, impl := range h.impls {
				text = strings.ReplaceAll(text, `compoundref="`+impl.id+`"`, `compoundref="`+h.id+`"`)
				text = strings.ReplaceAll(text, impl.path, h.path)
			}
		}
		root, err := ParseXML(strings.NewReader(text))
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := WriteXML(file, root); err != nil {
			return err
		}
	}
	return nil
}
