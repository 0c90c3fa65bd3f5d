package fbx

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"math"
)

// Encoder writes node trees in the binary FBX layout.
type Encoder struct {
	// Version is written to the header and selects 32- or 64-bit record headers.
	Version uint32
	// Compress zlib-compresses array properties.
	Compress bool
}

// Encode serializes the children of root. Supported property types are int16,
// bool, int32, float32, float64, int64, string, []byte and slices of float32,
// float64, int64, int32 and bool.
func (e Encoder) Encode(root *Node) ([]byte, error) {
	w := &writer{wide: e.Version >= wideVersion, compress: e.Compress}
	w.buf.WriteString(Magic)
	w.buf.Write([]byte{0x1A, 0x00})
	w.put(e.Version)
	for _, n := range root.Children {
		if err := w.node(n); err != nil {
			return nil, err
		}
	}
	w.null()
	return w.buf.Bytes(), nil
}

type writer struct {
	buf      bytes.Buffer
	wide     bool
	compress bool
}

func (w *writer) put(v any) {
	_ = binary.Write(&w.buf, binary.LittleEndian, v)
}

func (w *writer) width() int {
	if w.wide {
		return 8
	}
	return 4
}

func (w *writer) offset(v uint64) {
	if w.wide {
		w.put(v)
		return
	}
	w.put(uint32(v))
}

func (w *writer) patch(at int, v uint64) {
	b := w.buf.Bytes()
	if w.wide {
		binary.LittleEndian.PutUint64(b[at:], v)
		return
	}
	binary.LittleEndian.PutUint32(b[at:], uint32(v))
}

func (w *writer) null() {
	w.buf.Write(make([]byte, 3*w.width()+1))
}

func (w *writer) node(n *Node) error {
	if len(n.Name) > 255 {
		return fmt.Errorf("fbx: node name %q too long", n.Name)
	}

	start := w.buf.Len()
	w.offset(0)
	w.offset(uint64(len(n.Properties)))
	w.offset(0)
	w.buf.WriteByte(byte(len(n.Name)))
	w.buf.WriteString(n.Name)

	propStart := w.buf.Len()
	for _, p := range n.Properties {
		if err := w.property(p); err != nil {
			return fmt.Errorf("node %s: %w", n.Name, err)
		}
	}
	propLen := w.buf.Len() - propStart

	if len(n.Children) > 0 {
		for _, c := range n.Children {
			if err := w.node(c); err != nil {
				return err
			}
		}
		w.null()
	}

	w.patch(start, uint64(w.buf.Len()))
	w.patch(start+2*w.width(), uint64(propLen))
	return nil
}

func (w *writer) property(p any) error {
	switch v := p.(type) {
	case int16:
		w.buf.WriteByte('Y')
		w.put(v)
	case bool:
		w.buf.WriteByte('C')
		w.put(v)
	case int32:
		w.buf.WriteByte('I')
		w.put(v)
	case float32:
		w.buf.WriteByte('F')
		w.put(math.Float32bits(v))
	case float64:
		w.buf.WriteByte('D')
		w.put(math.Float64bits(v))
	case int64:
		w.buf.WriteByte('L')
		w.put(v)
	case string:
		w.buf.WriteByte('S')
		w.put(uint32(len(v)))
		w.buf.WriteString(v)
	case []byte:
		w.buf.WriteByte('R')
		w.put(uint32(len(v)))
		w.buf.Write(v)
	case []float32:
		return w.array('f', len(v), v)
	case []float64:
		return w.array('d', len(v), v)
	case []int64:
		return w.array('l', len(v), v)
	case []int32:
		return w.array('i', len(v), v)
	case []bool:
		return w.array('b', len(v), v)
	default:
		return fmt.Errorf("fbx: unsupported property type %T", p)
	}
	return nil
}

func (w *writer) array(code byte, count int, values any) error {
	var raw bytes.Buffer
	if err := binary.Write(&raw, binary.LittleEndian, values); err != nil {
		return err
	}

	encoding := uint32(0)
	data := raw.Bytes()
	if w.compress {
		var packed bytes.Buffer
		zw := zlib.NewWriter(&packed)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		encoding, data = 1, packed.Bytes()
	}

	w.buf.WriteByte(code)
	w.put(uint32(count))
	w.put(encoding)
	w.put(uint32(len(data)))
	w.buf.Write(data)
	return nil
}
