// Package goast implements entity.Introspector over Go source code.
//
// Struct types play the role of classes: the type's doc comment is the class
// comment, named fields are its properties (documented by their doc or line
// comment), and the first embedded struct is its parent.
package goast

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/toyz/entitydoc/internal/entity"
	"github.com/toyz/entitydoc/internal/errors"
)

// Class is a struct type discovered in source
type Class struct {
	ID       string // import path qualified name, or bare name without one
	Name     string
	Package  string
	File     string
	Line     int
	Comment  string
	Embedded []string // ids of embedded types, in declaration order
	Fields   []entity.PropertySource
}

// Introspector holds the struct types of every loaded file
type Introspector struct {
	mu      sync.RWMutex
	fset    *token.FileSet
	classes map[string]*Class
	byName  map[string][]string
}

// NewIntrospector creates an empty introspector
func NewIntrospector() *Introspector {
	return &Introspector{
		fset:    token.NewFileSet(),
		classes: make(map[string]*Class),
		byName:  make(map[string][]string),
	}
}

// LoadDir parses the non-test Go files of one directory. importPath
// qualifies class ids and may be empty.
func (in *Introspector) LoadDir(dir, importPath string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.WrapFileSystemError("read", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if err := in.LoadFile(filepath.Join(dir, name), importPath); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile parses a single Go file
func (in *Introspector) LoadFile(filename, importPath string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return errors.WrapFileSystemError("read", filename, err)
	}
	return in.LoadSource(filename, importPath, src)
}

// LoadSource parses Go source held in memory
func (in *Introspector) LoadSource(filename, importPath string, src []byte) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	file, err := parser.ParseFile(in.fset, filename, src, parser.ParseComments)
	if err != nil {
		return errors.Wrap(errors.SyntaxErrorCode, fmt.Sprintf("failed to parse %s", filename), err).
			WithLocation(errors.SourceLocation{File: filename})
	}

	in.addFile(file, importPath)
	return nil
}

func (in *Introspector) addFile(file *ast.File, importPath string) {
	imports := importNames(file)
	qualify := func(name string) string {
		if importPath == "" {
			return name
		}
		return importPath + "." + name
	}

	insp := inspector.New([]*ast.File{file})
	insp.Preorder([]ast.Node{(*ast.GenDecl)(nil)}, func(n ast.Node) {
		decl := n.(*ast.GenDecl)
		if decl.Tok != token.TYPE {
			return
		}
		for _, spec := range decl.Specs {
			ts := spec.(*ast.TypeSpec)
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil && len(decl.Specs) == 1 {
				doc = decl.Doc
			}

			pos := in.fset.Position(ts.Pos())
			class := &Class{
				ID:      qualify(ts.Name.Name),
				Name:    ts.Name.Name,
				Package: importPath,
				File:    pos.Filename,
				Line:    pos.Line,
				Comment: rawComment(doc),
			}

			for _, field := range st.Fields.List {
				if len(field.Names) == 0 {
					if id := embeddedID(field.Type, imports, qualify); id != "" {
						class.Embedded = append(class.Embedded, id)
					}
					continue
				}
				comment := field.Doc
				if comment == nil {
					comment = field.Comment
				}
				for _, name := range field.Names {
					class.Fields = append(class.Fields, entity.PropertySource{
						Name:    name.Name,
						Comment: rawComment(comment),
					})
				}
			}

			in.register(class)
		}
	})
}

func (in *Introspector) register(class *Class) {
	if _, exists := in.classes[class.ID]; !exists {
		in.byName[class.Name] = append(in.byName[class.Name], class.ID)
	}
	in.classes[class.ID] = class
}

// Classes returns the ids of all loaded struct types, sorted
func (in *Introspector) Classes() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()

	ids := make([]string, 0, len(in.classes))
	for id := range in.classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Class returns the loaded struct type for classID
func (in *Introspector) Class(classID string) (*Class, error) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	return in.lookup(classID)
}

// lookup accepts a full id or, when unambiguous, a bare type name.
// Callers hold the read lock.
func (in *Introspector) lookup(classID string) (*Class, error) {
	if class, ok := in.classes[classID]; ok {
		return class, nil
	}

	candidates := in.byName[classID]
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("struct type %q: %w", classID, errors.ErrClassNotFound)
	case 1:
		return in.classes[candidates[0]], nil
	default:
		return nil, fmt.Errorf("struct type %q is ambiguous (%s): %w",
			classID, strings.Join(candidates, ", "), errors.ErrClassNotFound)
	}
}

// OwnComment implements entity.Introspector
func (in *Introspector) OwnComment(classID string) (string, error) {
	class, err := in.Class(classID)
	if err != nil {
		return "", err
	}
	return class.Comment, nil
}

// ParentOf implements entity.Introspector. The parent is the first embedded
// type that is itself a loaded struct, falling back to the first embedded
// type so that a missing ancestor is still reported.
func (in *Introspector) ParentOf(classID string) (string, bool, error) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	class, err := in.lookup(classID)
	if err != nil {
		return "", false, err
	}
	if len(class.Embedded) == 0 {
		return "", false, nil
	}
	for _, id := range class.Embedded {
		if _, ok := in.classes[id]; ok {
			return id, true, nil
		}
	}
	return class.Embedded[0], true, nil
}

// PropertiesOf implements entity.Introspector. Fields promoted from loaded
// embedded structs follow the class's own fields unless shadowed.
func (in *Introspector) PropertiesOf(classID string) ([]entity.PropertySource, error) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	class, err := in.lookup(classID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	visited := make(map[string]bool)
	var props []entity.PropertySource

	queue := []*Class{class}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current.ID] {
			continue
		}
		visited[current.ID] = true

		for _, field := range current.Fields {
			if seen[field.Name] {
				continue
			}
			seen[field.Name] = true
			props = append(props, field)
		}
		for _, id := range current.Embedded {
			if embedded, ok := in.classes[id]; ok {
				queue = append(queue, embedded)
			}
		}
	}

	return props, nil
}

// rawComment rebuilds the comment text with its markers intact
func rawComment(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	lines := make([]string, len(group.List))
	for i, c := range group.List {
		lines[i] = c.Text
	}
	return strings.Join(lines, "\n")
}

// importNames maps the local name of every import to its path
func importNames(file *ast.File) map[string]string {
	names := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(importPath)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		names[name] = importPath
	}
	return names
}

// embeddedID resolves the type of an embedded field to a class id
func embeddedID(expr ast.Expr, imports map[string]string, qualify func(string) string) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return embeddedID(t.X, imports, qualify)
	case *ast.Ident:
		return qualify(t.Name)
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return ""
		}
		if importPath, ok := imports[pkg.Name]; ok {
			return importPath + "." + t.Sel.Name
		}
		return pkg.Name + "." + t.Sel.Name
	case *ast.IndexExpr:
		return embeddedID(t.X, imports, qualify)
	case *ast.IndexListExpr:
		return embeddedID(t.X, imports, qualify)
	default:
		return ""
	}
}
