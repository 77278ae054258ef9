package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const directivePrefix = "//di:"

// ctorKind describes how the generated constructor calls into user code.
type ctorKind int

const (
	// ctorNone: abstract type, no constructor.
	ctorNone ctorKind = iota
	// ctorLiteral: no New<T> function; instances are &T{}.
	ctorLiteral
	// ctorNoArgs: func New<T>() *T [, error].
	ctorNoArgs
	// ctorOptions: func New<T>(di.Options) *T [, error].
	ctorOptions
	ctorUnsupported
)

// typeDecl is one Go type carrying //di: directives.
type typeDecl struct {
	// GoType is the Go identifier of the type, also used as the nominal type name.
	GoType string

	// Component is true for //di:component types.
	Component bool
	// Name is the declared component name; empty means GoType.
	Name      string
	Transient bool

	// Extends is the Go identifier of the parent type, if any.
	Extends string

	IsStruct  bool
	Ctor      ctorKind
	CtorName  string
	CtorError bool

	// Pos is used in error messages.
	Pos string
}

// componentName returns the effective component name.
func (d *typeDecl) componentName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.GoType
}

// constructorInfo describes a New<T> function found in the package.
type constructorInfo struct {
	name      string
	kind      ctorKind
	withError bool
	pos       string
}

// scanPackage parses the non-test, non-generated Go files of pkgDir and returns the
// package name and the directive types in source order.
func scanPackage(pkgDir string) (string, []*typeDecl, error) {
	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		return "", nil, err
	}

	fileSet := token.NewFileSet()
	pkgName := ""
	var decls []*typeDecl
	ctors := map[string]constructorInfo{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(pkgDir, fileName)
		parsedFile, err := parser.ParseFile(fileSet, filePath, nil, parser.ParseComments)
		if err != nil {
			return "", nil, err
		}

		if pkgName == "" {
			pkgName = parsedFile.Name.Name
		} else if parsedFile.Name.Name != pkgName {
			return "", nil, fmt.Errorf("%s: package %s, expected %s", filePath, parsedFile.Name.Name, pkgName)
		}

		for _, declaration := range parsedFile.Decls {
			switch d := declaration.(type) {
			case *ast.GenDecl:
				found, err := typeDeclsOf(fileSet, d)
				if err != nil {
					return "", nil, err
				}
				decls = append(decls, found...)
			case *ast.FuncDecl:
				// Ignore methods; only free functions are constructors.
				if d.Recv != nil || d.Name == nil || !strings.HasPrefix(d.Name.Name, "New") {
					continue
				}
				// Unsupported signatures only matter for directive types.
				info, err := constructorOf(fileSet, d)
				if err != nil {
					info.kind = ctorUnsupported
				}
				ctors[d.Name.Name] = info
			}
		}
	}

	if pkgName == "" {
		return "", nil, fmt.Errorf("no Go files in %s", pkgDir)
	}

	for _, decl := range decls {
		info, ok := ctors["New"+decl.GoType]
		switch {
		case ok && info.kind == ctorUnsupported:
			return "", nil, fmt.Errorf("%s: unsupported constructor signature for %s (want func() *T or func(di.Options) *T, optionally with error)", info.pos, info.name)
		case ok:
			decl.Ctor, decl.CtorName, decl.CtorError = info.kind, info.name, info.withError
		case decl.Component && decl.IsStruct:
			decl.Ctor = ctorLiteral
		case decl.Component:
			return "", nil, fmt.Errorf("%s: component %s is not a struct and has no New%s constructor", decl.Pos, decl.GoType, decl.GoType)
		default:
			decl.Ctor = ctorNone
		}
	}
	return pkgName, decls, nil
}

// typeDeclsOf extracts directive types from a type declaration group.
func typeDeclsOf(fileSet *token.FileSet, gen *ast.GenDecl) ([]*typeDecl, error) {
	if gen.Tok != token.TYPE {
		return nil, nil
	}

	var out []*typeDecl
	for _, spec := range gen.Specs {
		typeSpec, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}

		doc := typeSpec.Doc
		if doc == nil && len(gen.Specs) == 1 {
			doc = gen.Doc
		}
		directives := directivesOf(doc)
		if len(directives) == 0 {
			continue
		}

		_, isStruct := typeSpec.Type.(*ast.StructType)
		decl := &typeDecl{
			GoType:   typeSpec.Name.Name,
			IsStruct: isStruct,
			Pos:      fileSet.Position(typeSpec.Pos()).String(),
		}
		for _, directive := range directives {
			if err := applyDirective(decl, directive); err != nil {
				return nil, fmt.Errorf("%s: %w", decl.Pos, err)
			}
		}
		out = append(out, decl)
	}
	return out, nil
}

// directivesOf returns the //di: lines of a comment group without the prefix.
//
// Raw comments are used because CommentGroup.Text drops directive lines.
func directivesOf(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var out []string
	for _, comment := range doc.List {
		if strings.HasPrefix(comment.Text, directivePrefix) {
			out = append(out, strings.TrimPrefix(comment.Text, directivePrefix))
		}
	}
	return out
}

// applyDirective applies one directive ("component ...", "type", "extends X").
func applyDirective(decl *typeDecl, directive string) error {
	fields := strings.Fields(directive)
	if len(fields) == 0 {
		return fmt.Errorf("empty directive")
	}

	switch fields[0] {
	case "component":
		decl.Component = true
		for _, arg := range fields[1:] {
			switch {
			case arg == "transient":
				decl.Transient = true
			case arg == "singleton":
				decl.Transient = false
			case strings.HasPrefix(arg, "name="):
				decl.Name = strings.TrimPrefix(arg, "name=")
				if decl.Name == "" {
					return fmt.Errorf("empty component name")
				}
			default:
				return fmt.Errorf("unknown component argument %q", arg)
			}
		}
	case "type":
		if len(fields) > 1 {
			return fmt.Errorf("//di:type takes no arguments")
		}
	case "extends":
		if len(fields) != 2 {
			return fmt.Errorf("//di:extends takes exactly one type name")
		}
		decl.Extends = fields[1]
	default:
		return fmt.Errorf("unknown directive %q", fields[0])
	}
	return nil
}

// constructorOf classifies a New* function.
func constructorOf(fileSet *token.FileSet, fn *ast.FuncDecl) (constructorInfo, error) {
	info := constructorInfo{name: fn.Name.Name, pos: fileSet.Position(fn.Pos()).String()}

	params := fn.Type.Params
	switch {
	case params == nil || len(params.List) == 0:
		info.kind = ctorNoArgs
	case len(params.List) == 1 && len(params.List[0].Names) <= 1 && isOptionsType(params.List[0].Type):
		info.kind = ctorOptions
	default:
		return info, fmt.Errorf("%s: %s: unsupported parameters", info.pos, info.name)
	}

	results := fn.Type.Results
	if results == nil || len(results.List) == 0 || len(results.List) > 2 {
		return info, fmt.Errorf("%s: %s: must return T or (T, error)", info.pos, info.name)
	}
	for _, r := range results.List {
		if len(r.Names) > 1 {
			return info, fmt.Errorf("%s: %s: must return T or (T, error)", info.pos, info.name)
		}
	}
	if len(results.List) == 2 {
		ident, ok := results.List[1].Type.(*ast.Ident)
		if !ok || ident.Name != "error" {
			return info, fmt.Errorf("%s: %s: second result must be error", info.pos, info.name)
		}
		info.withError = true
	}
	return info, nil
}

// isOptionsType reports whether expr is <pkg>.Options.
func isOptionsType(expr ast.Expr) bool {
	selectorExpr, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	if _, ok := selectorExpr.X.(*ast.Ident); !ok {
		return false
	}
	return selectorExpr.Sel != nil && selectorExpr.Sel.Name == "Options"
}

// validateDecls checks parents exist and component names are unique, and returns
// the declarations ordered so parents precede children (stable otherwise).
func validateDecls(decls []*typeDecl) ([]*typeDecl, error) {
	byGoType := make(map[string]*typeDecl, len(decls))
	for _, decl := range decls {
		byGoType[decl.GoType] = decl
	}

	seenNames := map[string]string{}
	for _, decl := range decls {
		if decl.Extends != "" {
			if _, ok := byGoType[decl.Extends]; !ok {
				return nil, fmt.Errorf("%s: %s extends %s, which has no //di: directive in this package", decl.Pos, decl.GoType, decl.Extends)
			}
			if decl.Extends == decl.GoType {
				return nil, fmt.Errorf("%s: %s extends itself", decl.Pos, decl.GoType)
			}
		}
		if !decl.Component {
			continue
		}
		name := decl.componentName()
		if other, ok := seenNames[name]; ok {
			return nil, fmt.Errorf("%s: duplicate component name %q (also declared by %s)", decl.Pos, name, other)
		}
		seenNames[name] = decl.GoType
	}

	depth := map[string]int{}
	var depthOf func(decl *typeDecl, visiting map[string]bool) (int, error)
	depthOf = func(decl *typeDecl, visiting map[string]bool) (int, error) {
		if d, ok := depth[decl.GoType]; ok {
			return d, nil
		}
		if decl.Extends == "" {
			depth[decl.GoType] = 0
			return 0, nil
		}
		if visiting[decl.GoType] {
			return 0, fmt.Errorf("%s: inheritance cycle through %s", decl.Pos, decl.GoType)
		}
		visiting[decl.GoType] = true
		d, err := depthOf(byGoType[decl.Extends], visiting)
		if err != nil {
			return 0, err
		}
		depth[decl.GoType] = d + 1
		return d + 1, nil
	}
	for _, decl := range decls {
		if _, err := depthOf(decl, map[string]bool{}); err != nil {
			return nil, err
		}
	}

	ordered := append([]*typeDecl(nil), decls...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return depth[ordered[i].GoType] < depth[ordered[j].GoType]
	})
	return ordered, nil
}
