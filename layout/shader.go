package layout

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// ShaderStructName is the name of the vertex struct in the shader source.
const ShaderStructName = "Vertex"

//go:embed vertex.wgsl
var shaderSource string

// ShaderSource returns the canonical accelerator-side declaration of Vertex.
func ShaderSource() string {
	return shaderSource
}

// Field is one member of a struct layout.
type Field struct {
	Name   string
	Offset uint32
	Size   uint32
}

// StructLayout describes where a struct's members live in memory. Size is the
// struct span, which is also the array stride.
type StructLayout struct {
	Name   string
	Fields []Field
	Size   uint32
}

// Field looks a member up by name.
func (l StructLayout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (l StructLayout) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "%s (%d bytes)\n", l.Name, l.Size)
	for _, f := range l.Fields {
		fmt.Fprintf(&b, "  %-10s offset %3d  size %3d\n", f.Name, f.Offset, f.Size)
	}
	return b.String()
}

// HostLayout reports the Go-side layout of Vertex.
func HostLayout() StructLayout {
	var v Vertex
	return StructLayout{
		Name: "host " + ShaderStructName,
		Fields: []Field{
			{Name: PositionName, Offset: uint32(unsafe.Offsetof(v.Pos)), Size: uint32(unsafe.Sizeof(v.Pos.Vec3))},
			{Name: ColorName, Offset: uint32(unsafe.Offsetof(v.Color)), Size: uint32(unsafe.Sizeof(v.Color.Vec3))},
		},
		Size: uint32(unsafe.Sizeof(v)),
	}
}

var shaderLayout = sync.OnceValues(func() (StructLayout, error) {
	return ParseShaderLayout(shaderSource, ShaderStructName)
})

// ShaderLayout reports the layout naga's WGSL layouter assigns to the embedded
// Vertex declaration. The result is computed once.
func ShaderLayout() (StructLayout, error) {
	return shaderLayout()
}

// ParseShaderLayout lowers WGSL source and returns the layout of the named
// struct.
func ParseShaderLayout(source string, name string) (StructLayout, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return StructLayout{}, fmt.Errorf("parse shader declaration: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return StructLayout{}, fmt.Errorf("lower shader declaration: %w", err)
	}

	for _, t := range module.Types {
		if t.Name != name {
			continue
		}
		st, ok := t.Inner.(ir.StructType)
		if !ok {
			return StructLayout{}, fmt.Errorf("shader type %s is not a struct", name)
		}
		l := StructLayout{
			Name:   "shader " + name,
			Fields: make([]Field, len(st.Members)),
			Size:   st.Span,
		}
		for i, m := range st.Members {
			l.Fields[i] = Field{
				Name:   m.Name,
				Offset: m.Offset,
				Size:   ir.TypeSize(module, m.Type),
			}
		}
		return l, nil
	}
	return StructLayout{}, fmt.Errorf("shader declares no struct %s", name)
}

// Verify checks that the Go layout of Vertex matches the shader compiler's
// layout of the shared declaration.
func Verify() error {
	shader, err := ShaderLayout()
	if err != nil {
		return err
	}
	host := HostLayout()
	Logger().Debug("vertex layouts", "host", host.String(), "shader", shader.String())

	if err := Compare(host, shader); err != nil {
		return err
	}
	Logger().Info("vertex layout verified", "stride", host.Size)
	return nil
}

// Compare reports the first difference between two layouts. Members must
// appear in the same order with equal names, offsets and sizes.
func Compare(want, got StructLayout) error {
	if len(want.Fields) != len(got.Fields) {
		return fmt.Errorf("%w: %s has %d members, %s has %d",
			ErrLayoutMismatch, want.Name, len(want.Fields), got.Name, len(got.Fields))
	}
	for i := range want.Fields {
		w, g := want.Fields[i], got.Fields[i]
		if w.Name != g.Name {
			return fmt.Errorf("%w: member %d is %q in %s but %q in %s",
				ErrLayoutMismatch, i, w.Name, want.Name, g.Name, got.Name)
		}
		if w.Offset != g.Offset {
			return fmt.Errorf("%w: %s at offset %d in %s but %d in %s",
				ErrLayoutMismatch, w.Name, w.Offset, want.Name, g.Offset, got.Name)
		}
		if w.Size != g.Size {
			return fmt.Errorf("%w: %s is %d bytes in %s but %d in %s",
				ErrLayoutMismatch, w.Name, w.Size, want.Name, g.Size, got.Name)
		}
	}
	if want.Size != got.Size {
		return fmt.Errorf("%w: stride %d in %s but %d in %s",
			ErrLayoutMismatch, want.Size, want.Name, got.Size, got.Name)
	}
	return nil
}
