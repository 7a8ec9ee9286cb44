package model

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"GPU_vertex_layout/layout"
	vm "GPU_vertex_layout/vector_math"
)

// unified stands in for memory shared by host and accelerator.
type unified struct {
	mem    []byte
	writes int
}

func newUnified(size int) *unified { return &unified{mem: make([]byte, size)} }

func (u *unified) Size() uint64 { return uint64(len(u.mem)) }

func (u *unified) Write(payload []byte) error {
	u.writes++
	copy(u.mem, payload)
	return nil
}

func (u *unified) Read() ([]byte, error) {
	out := make([]byte, len(u.mem))
	copy(out, u.mem)
	return out, nil
}

type brokenMemory struct{ size uint64 }

func (b brokenMemory) Size() uint64          { return b.size }
func (b brokenMemory) Write([]byte) error    { return errors.New("device lost") }
func (b brokenMemory) Read() ([]byte, error) { return nil, errors.New("device lost") }

func TestParseShape(t *testing.T) {
	cases := []struct {
		in   string
		want Shape
		ok   bool
	}{
		{"triangle", Triangle, true},
		{"Cube", Cube, true},
		{" CUBE ", Cube, true},
		{"sphere", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseShape(c.in)
		if (err == nil) != c.ok {
			t.Errorf("ParseShape(%q) error = %v", c.in, err)
			continue
		}
		if c.ok && got != c.want {
			t.Errorf("ParseShape(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if Shape(7).String() != "Shape(7)" {
		t.Errorf("unexpected name for unknown shape: %s", Shape(7))
	}
}

func TestBuiltinShapes(t *testing.T) {
	cases := []struct {
		shape    Shape
		vertices int
		count    int
	}{
		{Triangle, 3, 3},
		{Cube, 8, 36},
	}
	for _, c := range cases {
		m := NewModel(c.shape)
		if m.Name != c.shape.String() {
			t.Errorf("%v: name %q", c.shape, m.Name)
		}
		if len(m.Mesh.Vertices) != c.vertices || m.Count() != c.count {
			t.Errorf("%v: %d vertices, %d indices", c.shape, len(m.Mesh.Vertices), m.Count())
		}
		for _, i := range m.Mesh.Indices {
			if int(i) >= len(m.Mesh.Vertices) {
				t.Errorf("%v: index %d out of range", c.shape, i)
			}
		}
		if m.VertexBufferSize() != c.vertices*layout.Stride || len(m.VertexBytes()) != m.VertexBufferSize() {
			t.Errorf("%v: vertex buffer size %d", c.shape, m.VertexBufferSize())
		}
	}
}

func TestIndexBytes(t *testing.T) {
	m := NewModel(Cube)
	b := m.IndexBytes()
	if len(b) != m.IndexBufferSize() || len(b) != 72 {
		t.Fatalf("index buffer is %d bytes, want 72", len(b))
	}
	for i, want := range m.Mesh.Indices {
		if got := binary.LittleEndian.Uint16(b[2*i:]); got != want {
			t.Errorf("index %d = %d, want %d", i, got, want)
		}
	}
}

func TestSetScale(t *testing.T) {
	m := NewModel(Triangle)
	unit := vm.NewUnitMat(4)
	if !m.Mesh.ModelMat.Equals(&unit) {
		t.Errorf("new model should have an identity matrix")
	}
	m.SetScale(0.5)
	want := vm.NewUniformScale(0.5)
	if !m.Mesh.ModelMat.Equals(&want) {
		t.Errorf("scaled matrix:\n%s", m.Mesh.ModelMat.ToString())
	}
}

func TestUniformsLayout(t *testing.T) {
	l, err := UniformsLayout()
	if err != nil {
		t.Fatalf("uniforms layout: %v", err)
	}
	if l.Size != UniformsSize {
		t.Errorf("uniforms size = %d, want %d", l.Size, UniformsSize)
	}
	if f, ok := l.Field("model"); !ok || f.Offset != UniformsModelOffset || f.Size != 64 {
		t.Errorf("unexpected model member: %+v", f)
	}
	if f, ok := l.Field("wireframe"); !ok || f.Offset != UniformsWireframeOffset || f.Size != 4 {
		t.Errorf("unexpected wireframe member: %+v", f)
	}
}

func TestUniformsBytes(t *testing.T) {
	m := NewModel(Cube)
	m.Mesh.ModelMat = vm.NewTranslation(vm.Vec3{X: 1, Y: 2, Z: 3})
	m.Wireframe = true
	u := m.Uniforms()
	b, err := u.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if len(b) != UniformsSize {
		t.Fatalf("got %d bytes, want %d", len(b), UniformsSize)
	}
	f := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])) }
	// column-major: the translation is the fourth column
	if f(12) != 1 || f(13) != 2 || f(14) != 3 || f(15) != 1 {
		t.Errorf("translation column = %v %v %v %v", f(12), f(13), f(14), f(15))
	}
	if binary.LittleEndian.Uint32(b[UniformsWireframeOffset:]) != 1 {
		t.Errorf("wireframe flag not set")
	}
	for _, x := range b[UniformsWireframeOffset+4:] {
		if x != 0 {
			t.Fatalf("tail padding not zero: % x", b[UniformsWireframeOffset+4:])
		}
	}

	ragged := vm.NewUnitMat(4)
	ragged[2] = ragged[2][:3]
	for name, bad := range map[string]Uniforms{
		"zero value": {},
		"3x3":        {Model: vm.NewUnitMat(3)},
		"ragged":     {Model: ragged},
		"no columns": {Model: vm.Mat{{}, {}, {}, {}}},
	} {
		if _, err := bad.Bytes(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestUploadReadBack(t *testing.T) {
	tri := []layout.Vertex{
		layout.NewVertex(vm.Vec3{X: -1, Y: -1, Z: 0}, vm.Vec3{X: 1, Y: 0, Z: 0}),
		layout.NewVertex(vm.Vec3{X: 0, Y: 1, Z: 0}, vm.Vec3{X: 0, Y: 1, Z: 0}),
		layout.NewVertex(vm.Vec3{X: 1, Y: -1, Z: 0}, vm.Vec3{X: 0, Y: 0, Z: 1}),
	}
	m := NewMeshModel("tri", tri, []uint16{0, 1, 2})
	mem := newUnified(m.VertexBufferSize())
	if err := m.Upload(mem); err != nil {
		t.Fatalf("upload: %v", err)
	}
	got, err := ReadBack(mem)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if bad := Mismatches(tri, got); len(bad) != 0 {
		t.Errorf("vertices %v differ after the round trip", bad)
	}
	for i := range tri {
		if got[i].Floats() != tri[i].Floats() {
			t.Errorf("vertex %d: got %v, want %v", i, got[i].Floats(), tri[i].Floats())
		}
	}
}

func TestUploadSizeMismatch(t *testing.T) {
	m := NewModel(Triangle)
	mem := newUnified(m.VertexBufferSize() - 4)
	if err := m.Upload(mem); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
	if mem.writes != 0 {
		t.Errorf("undersized buffer was written")
	}
}

func TestDeviceErrors(t *testing.T) {
	m := NewModel(Triangle)
	if err := m.Upload(brokenMemory{size: uint64(m.VertexBufferSize())}); err == nil {
		t.Errorf("expected the write error to be returned")
	}
	if _, err := ReadBack(brokenMemory{}); err == nil {
		t.Errorf("expected the read error to be returned")
	}
}

func TestMismatches(t *testing.T) {
	a := NewModel(Triangle).Mesh.Vertices
	b := NewModel(Triangle).Mesh.Vertices
	b[1].Color.Y = float32(math.Copysign(0, -1))
	b[1].Color.X = float32(math.Copysign(0, -1))
	if bad := Mismatches(a, b); len(bad) != 1 || bad[0] != 1 {
		t.Errorf("expected vertex 1 to differ, got %v", bad)
	}
	if bad := Mismatches(a, a[:2]); len(bad) != 1 || bad[0] != 2 {
		t.Errorf("expected the missing vertex to be reported, got %v", bad)
	}
}
