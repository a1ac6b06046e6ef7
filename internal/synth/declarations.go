package synth

import (
	"strconv"
	"strings"

	"github.com/sirkon/errsum/internal/naming"
	"github.com/sirkon/errsum/internal/typeref"
)

// Qualifier renders a reference as a Go type expression valid in the generated file.
type Qualifier func(ref typeref.Reference) string

// TypeExpr renders ref qualified with the given package name. pkg is empty for local types.
func TypeExpr(ref typeref.Reference, pkg string) string {
	var b strings.Builder
	if ref.Pointer {
		b.WriteByte('*')
	}
	if pkg != "" {
		b.WriteString(pkg)
		b.WriteByte('.')
	}
	b.WriteString(ref.Name)
	if ref.TypeArgs != "" {
		b.WriteByte('[')
		b.WriteString(ref.TypeArgs)
		b.WriteByte(']')
	}

	return b.String()
}

// Sprintf is the reference used to qualify fmt.Sprintf in converters.
var Sprintf = typeref.Reference{Package: "fmt", Name: "Sprintf"}

// Decl is a top level declaration synthesized for an aggregate.
type Decl interface {
	isDecl()
	write(b *strings.Builder)
}

// InterfaceDecl is the aggregate type itself.
type InterfaceDecl struct {
	Name   string
	Marker string
	Func   string
}

// VariantDecl is a variant type with its methods.
type VariantDecl struct {
	TypeName  string
	Aggregate string
	Marker    string
	Field     string
}

// ConverterDecl is the function turning plain errors into the aggregate.
type ConverterDecl struct {
	Name      string
	Aggregate string
	Func      string
	Sprintf   string
	Cases     []ConverterCase
}

// ConverterCase is a single type switch case of a converter.
type ConverterCase struct {
	Type    string
	Variant string
}

func (*InterfaceDecl) isDecl() {}
func (*VariantDecl) isDecl()   {}
func (*ConverterDecl) isDecl() {}

// Decls lists the declarations of an aggregate in the order they are emitted.
func Decls(agg *Aggregate, qualify Qualifier) []Decl {
	marker := naming.Marker(agg.Name)
	res := []Decl{
		&InterfaceDecl{
			Name:   agg.Name,
			Marker: marker,
			Func:   agg.Func,
		},
	}

	conv := &ConverterDecl{
		Name:      agg.Converter,
		Aggregate: agg.Name,
		Func:      agg.Func,
		Sprintf:   qualify(Sprintf),
	}
	for _, v := range agg.Variants {
		typ := qualify(v.Source.Ref)
		res = append(res, &VariantDecl{
			TypeName:  v.TypeName,
			Aggregate: agg.Name,
			Marker:    marker,
			Field:     typ,
		})
		conv.Cases = append(conv.Cases, ConverterCase{
			Type:    typ,
			Variant: v.TypeName,
		})
	}

	return append(res, conv)
}

// Declarations renders the declarations of an aggregate separated with empty lines.
func Declarations(agg *Aggregate, qualify Qualifier) string {
	var b strings.Builder
	for i, d := range Decls(agg, qualify) {
		if i > 0 {
			b.WriteByte('\n')
		}
		d.write(&b)
	}

	return b.String()
}

func (d *InterfaceDecl) write(b *strings.Builder) {
	b.WriteString("// " + d.Name + " is the error returned by " + d.Func + ".\n")
	b.WriteString("type " + d.Name + " interface {\n")
	b.WriteString("\terror\n")
	b.WriteString("\t" + d.Marker + "()\n")
	b.WriteString("}\n")
}

func (d *VariantDecl) write(b *strings.Builder) {
	b.WriteString("// " + d.TypeName + " is the " + d.Aggregate + " variant holding " + d.Field + ".\n")
	b.WriteString("type " + d.TypeName + " struct {\n")
	b.WriteString("\tErr " + d.Field + "\n")
	b.WriteString("}\n\n")
	b.WriteString("func (e " + d.TypeName + ") Error() string { return e.Err.Error() }\n\n")
	b.WriteString("func (e " + d.TypeName + ") Unwrap() error { return e.Err }\n\n")
	b.WriteString("func (" + d.TypeName + ") " + d.Marker + "() {}\n")
}

func (d *ConverterDecl) write(b *strings.Builder) {
	b.WriteString("// " + d.Name + " converts errors returned by the body of " + d.Func + ".\n")
	b.WriteString("func " + d.Name + "(err error) " + d.Aggregate + " {\n")
	b.WriteString("\tswitch e := err.(type) {\n")
	b.WriteString("\tcase nil:\n\t\treturn nil\n")
	b.WriteString("\tcase " + d.Aggregate + ":\n\t\treturn e\n")
	for _, c := range d.Cases {
		b.WriteString("\tcase " + c.Type + ":\n")
		b.WriteString("\t\treturn " + c.Variant + "{Err: e}\n")
	}
	b.WriteString("\tdefault:\n")
	format := strconv.Quote(d.Func + ": error of undeclared type %T: %v")
	b.WriteString("\t\tpanic(" + d.Sprintf + "(" + format + ", err, err))\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")
}
