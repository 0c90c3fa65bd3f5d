package fbx

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Magic is the first 21 bytes of a binary FBX file.
const Magic = "Kaydara FBX Binary  \x00"

const (
	headerSize = len(Magic) + 2 + 4
	// wideVersion is the first version using 64-bit record headers.
	wideVersion = 7500
)

var (
	// ErrInvalidHeader is returned for input that is not binary FBX.
	ErrInvalidHeader = errors.New("fbx: invalid binary header")
	// ErrTruncated is returned when a record runs past the end of the input.
	ErrTruncated = errors.New("fbx: unexpected end of data")
	// ErrInvalidRecord is returned for a record whose end offset does not lie
	// past its own content, or an array whose payload does not match its length.
	ErrInvalidRecord = errors.New("fbx: invalid record")
)

// Node is one record of the FBX node tree.
type Node struct {
	Name       string
	Properties []any
	Children   []*Node
}

// Child returns the first direct child called name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every direct child called name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Document is a parsed FBX file.
type Document struct {
	Version uint32
	Root    *Node
}

// IsBinary reports whether data starts with the binary FBX magic.
func IsBinary(data []byte) bool {
	return len(data) >= len(Magic) && string(data[:len(Magic)]) == Magic
}

// Parse decodes a binary FBX file.
func Parse(data []byte) (*Document, error) {
	if len(data) < headerSize || !IsBinary(data) {
		return nil, ErrInvalidHeader
	}

	version := binary.LittleEndian.Uint32(data[len(Magic)+2:])
	p := &parser{data: data, pos: headerSize, wide: version >= wideVersion}

	root := &Node{}
	for p.pos < len(p.data) {
		n, end, err := p.record()
		if err != nil {
			return nil, err
		}
		if end {
			break
		}
		root.Children = append(root.Children, n)
	}
	return &Document{Version: version, Root: root}, nil
}

type parser struct {
	data []byte
	pos  int
	wide bool
}

func (p *parser) take(n int) ([]byte, error) {
	if n < 0 || p.pos+n > len(p.data) {
		return nil, ErrTruncated
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b, nil
}

func (p *parser) u32() (uint32, error) {
	b, err := p.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (p *parser) offset() (uint64, error) {
	if !p.wide {
		v, err := p.u32()
		return uint64(v), err
	}
	b, err := p.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// record reads one node. It reports end for the null record that closes a list.
func (p *parser) record() (*Node, bool, error) {
	endOffset, err := p.offset()
	if err != nil {
		return nil, false, err
	}
	numProps, err := p.offset()
	if err != nil {
		return nil, false, err
	}
	if _, err := p.offset(); err != nil { // property list length
		return nil, false, err
	}
	nameLen, err := p.take(1)
	if err != nil {
		return nil, false, err
	}

	if endOffset == 0 {
		return nil, true, nil
	}
	if endOffset > uint64(len(p.data)) {
		return nil, false, ErrTruncated
	}
	if endOffset < uint64(p.pos)+uint64(nameLen[0]) {
		return nil, false, fmt.Errorf("%w: end offset %d before content at %d", ErrInvalidRecord, endOffset, p.pos)
	}

	name, err := p.take(int(nameLen[0]))
	if err != nil {
		return nil, false, err
	}
	n := &Node{Name: string(name)}

	for i := uint64(0); i < numProps; i++ {
		v, err := p.property()
		if err != nil {
			return nil, false, fmt.Errorf("node %s property %d: %w", n.Name, i, err)
		}
		n.Properties = append(n.Properties, v)
	}

	for uint64(p.pos) < endOffset {
		child, end, err := p.record()
		if err != nil {
			return nil, false, err
		}
		if end {
			break
		}
		n.Children = append(n.Children, child)
	}
	if uint64(p.pos) > endOffset {
		return nil, false, fmt.Errorf("%w: node %s overruns its end offset %d", ErrInvalidRecord, n.Name, endOffset)
	}
	p.pos = int(endOffset)
	return n, false, nil
}

func (p *parser) property() (any, error) {
	code, err := p.take(1)
	if err != nil {
		return nil, err
	}

	switch code[0] {
	case 'Y':
		b, err := p.take(2)
		if err != nil {
			return nil, err
		}
		return int16(binary.LittleEndian.Uint16(b)), nil
	case 'C':
		b, err := p.take(1)
		if err != nil {
			return nil, err
		}
		return b[0] != 0, nil
	case 'I':
		v, err := p.u32()
		return int32(v), err
	case 'F':
		v, err := p.u32()
		return math.Float32frombits(v), err
	case 'D':
		b, err := p.take(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case 'L':
		b, err := p.take(8)
		if err != nil {
			return nil, err
		}
		return int64(binary.LittleEndian.Uint64(b)), nil
	case 'S', 'R':
		n, err := p.u32()
		if err != nil {
			return nil, err
		}
		b, err := p.take(int(n))
		if err != nil {
			return nil, err
		}
		if code[0] == 'S' {
			return string(b), nil
		}
		return append([]byte(nil), b...), nil
	case 'f', 'd', 'l', 'i', 'b':
		return p.array(code[0])
	default:
		return nil, fmt.Errorf("unknown property type %q", code[0])
	}
}

func (p *parser) array(code byte) (any, error) {
	count, err := p.u32()
	if err != nil {
		return nil, err
	}
	encoding, err := p.u32()
	if err != nil {
		return nil, err
	}
	size, err := p.u32()
	if err != nil {
		return nil, err
	}
	raw, err := p.take(int(size))
	if err != nil {
		return nil, err
	}

	want := uint64(count) * elemSize(code)
	if encoding == 1 {
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("array: %w", err)
		}
		defer zr.Close()
		if raw, err = io.ReadAll(io.LimitReader(zr, int64(want)+1)); err != nil {
			return nil, fmt.Errorf("array: %w", err)
		}
	}
	if uint64(len(raw)) != want {
		return nil, fmt.Errorf("%w: array of %d needs %d bytes, has %d", ErrInvalidRecord, count, want, len(raw))
	}

	var out any
	switch code {
	case 'f':
		out = make([]float32, count)
	case 'd':
		out = make([]float64, count)
	case 'l':
		out = make([]int64, count)
	case 'i':
		out = make([]int32, count)
	case 'b':
		out = make([]bool, count)
	}
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("array: %w", err)
	}
	return out, nil
}

// elemSize is the encoded size of one element of an array property.
func elemSize(code byte) uint64 {
	switch code {
	case 'd', 'l':
		return 8
	case 'f', 'i':
		return 4
	}
	return 1
}
