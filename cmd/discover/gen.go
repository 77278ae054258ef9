package main

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"text/template"
)

// genType is one generated type variable.
type genType struct {
	GoType  string
	VarName string
	Ctor    string
	Options []string
}

// templateData is the input passed to genTemplate.
type templateData struct {
	Package  string
	DIImport string
	Source   string
	Types    []genType
}

// genTemplate renders the components file; the output is passed through go/format.
var genTemplate = template.Must(
	template.New("discover").Parse(`// Code generated by discover; DO NOT EDIT.

package {{.Package}}

import di "{{.DIImport}}"

var (
{{- range $i, $t := .Types}}
{{- if $i}}
{{end}}
	// {{$t.VarName}} is the nominal type of {{$t.GoType}}.
	{{$t.VarName}} = di.DefineType({{printf "%q" $t.GoType}}, {{$t.Ctor}}{{range $t.Options}},
		{{.}}{{end}}{{if $t.Options}},
	{{end}})
{{- end}}
)

// {{.Source}} lists the types declared in this package.
var {{.Source}} = di.Types{
{{- range .Types}}
	{{.VarName}},
{{- end}}
}
`),
)

// buildTemplateData turns validated declarations into template input.
func buildTemplateData(pkgName string, decls []*typeDecl, cfg genConfig) templateData {
	data := templateData{
		Package:  pkgName,
		DIImport: cfg.Import,
		Source:   cfg.Source,
		Types:    make([]genType, 0, len(decls)),
	}

	varOf := func(goType string) string { return goType + cfg.Suffix }

	for _, decl := range decls {
		gt := genType{
			GoType:  decl.GoType,
			VarName: varOf(decl.GoType),
			Ctor:    ctorExpr(decl),
		}
		if decl.Extends != "" {
			gt.Options = append(gt.Options, "di.Extends("+varOf(decl.Extends)+")")
		}
		if decl.Component {
			if decl.Name != "" {
				gt.Options = append(gt.Options, "di.Named("+strconv.Quote(decl.Name)+")")
			} else {
				gt.Options = append(gt.Options, "di.Component()")
			}
			if decl.Transient {
				gt.Options = append(gt.Options, "di.WithLifetime(di.Transient)")
			}
		}
		data.Types = append(data.Types, gt)
	}
	return data
}

// ctorExpr returns the Go expression passed as the di.Constructor.
func ctorExpr(decl *typeDecl) string {
	switch decl.Ctor {
	case ctorLiteral:
		return fmt.Sprintf("func(di.Options) (any, error) { return &%s{}, nil }", decl.GoType)
	case ctorNoArgs:
		if decl.CtorError {
			return fmt.Sprintf("func(di.Options) (any, error) { return %s() }", decl.CtorName)
		}
		return fmt.Sprintf("func(di.Options) (any, error) { return %s(), nil }", decl.CtorName)
	case ctorOptions:
		if decl.CtorError {
			return fmt.Sprintf("di.FuncE(%s)", decl.CtorName)
		}
		return fmt.Sprintf("di.Func(%s)", decl.CtorName)
	default:
		return "nil"
	}
}

// render executes the template and gofmt's the result.
func render(data templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := genTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}
