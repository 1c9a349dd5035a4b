package memfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mmorale3/h5/internal/binary"
	"github.com/mmorale3/h5/internal/dspace"
	"github.com/mmorale3/h5/internal/dtype"
	"github.com/mmorale3/h5/internal/filter"
	"github.com/mmorale3/h5/internal/storage"
)

// Native file format:
//
//	magic "H5MF", version byte, root group, lookup3 checksum (u32)
//
// of everything before the checksum. Groups serialize as attribute,
// entry, and sub-group tables in name order; entries carry their own
// attribute table ahead of the payload. Entry payloads are stored
// raw, or deflate-compressed when the entry was created with a deflate
// level; the chunk extents are recorded alongside so a reloaded entry
// keeps its creation properties.

var magic = []byte("H5MF")

const formatVersion = 1

// WriteTo serializes the file. It implements io.WriterTo.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	bw := binary.NewWriter()
	bw.WriteBytes(magic)
	bw.WriteUint8(formatVersion)
	if err := writeGroup(bw, f.root); err != nil {
		return 0, err
	}
	bw.WriteUint32(binary.Checksum(bw.Bytes()))

	n, err := w.Write(bw.Bytes())
	return int64(n), err
}

// Load reads a serialized file back into a new in-memory engine.
func Load(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if len(data) < len(magic)+1+4 {
		return nil, fmt.Errorf("file too short (%d bytes)", len(data))
	}
	if !bytes.Equal(data[:len(magic)], magic) {
		return nil, fmt.Errorf("bad magic: not a native container file")
	}

	body, sum := data[:len(data)-4], data[len(data)-4:]
	if !binary.VerifyChecksum(body, binary.NewReader(sum).ReadUint32()) {
		return nil, fmt.Errorf("checksum mismatch")
	}

	br := binary.NewReader(body[len(magic):])
	if v := br.ReadUint8(); v != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", v)
	}

	f := New()
	if err := readGroup(br, f.root); err != nil {
		return nil, err
	}
	if err := br.Err(); err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	return f, nil
}

func writeGroup(w *binary.Writer, g *group) error {
	if err := writeAttrs(w, g.attrs); err != nil {
		return err
	}

	names := g.Entries()
	w.WriteUint32(uint32(len(names)))
	for _, name := range names {
		w.WriteString(name)
		if err := writeEntry(w, g.entries[name]); err != nil {
			return fmt.Errorf("entry %q: %w", g.childPath(name), err)
		}
	}

	names = g.Containers()
	w.WriteUint32(uint32(len(names)))
	for _, name := range names {
		w.WriteString(name)
		if err := writeGroup(w, g.groups[name]); err != nil {
			return err
		}
	}
	return nil
}

func readGroup(r *binary.Reader, g *group) error {
	if err := readAttrs(r, g.attrs); err != nil {
		return err
	}

	nentries := r.ReadUint32()
	for i := uint32(0); i < nentries; i++ {
		name := r.ReadString()
		e, err := readEntry(r, g.file)
		if err != nil {
			return fmt.Errorf("entry %q: %w", g.childPath(name), err)
		}
		e.path = g.childPath(name)
		g.entries[name] = e
	}

	ngroups := r.ReadUint32()
	for i := uint32(0); i < ngroups; i++ {
		name := r.ReadString()
		sub := newGroup(g.file, g.childPath(name))
		if err := readGroup(r, sub); err != nil {
			return err
		}
		g.groups[name] = sub
	}
	return nil
}

func writeDatatype(w *binary.Writer, dt dtype.Datatype) {
	w.WriteUint8(uint8(dt.Class))
	w.WriteUint32(uint32(dt.Size))
	if dt.Signed {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

func readDatatype(r *binary.Reader) dtype.Datatype {
	return dtype.Datatype{
		Class:  dtype.Class(r.ReadUint8()),
		Size:   int(r.ReadUint32()),
		Signed: r.ReadUint8() != 0,
	}
}

func writeSpace(w *binary.Writer, s *dspace.Dataspace) error {
	if s.Rank > 255 {
		return fmt.Errorf("rank %d exceeds the format limit of 255", s.Rank)
	}
	w.WriteUint8(uint8(s.Rank))
	for _, d := range s.Dims {
		w.WriteInt64(d)
	}
	return nil
}

func readSpace(r *binary.Reader) *dspace.Dataspace {
	rank := int(r.ReadUint8())
	s := &dspace.Dataspace{Rank: rank}
	if rank > 0 {
		s.Dims = make([]int64, rank)
		for i := range s.Dims {
			s.Dims[i] = r.ReadInt64()
		}
	}
	return s
}

func writeAttrs(w *binary.Writer, attrs attrSet) error {
	names := attrs.names()
	w.WriteUint32(uint32(len(names)))
	for _, name := range names {
		w.WriteString(name)
		if err := writeAttr(w, attrs[name]); err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}
	}
	return nil
}

func readAttrs(r *binary.Reader, attrs attrSet) error {
	n := r.ReadUint32()
	for i := uint32(0); i < n; i++ {
		name := r.ReadString()
		a := readAttr(r)
		if err := r.Err(); err != nil {
			return err
		}
		attrs[name] = a
	}
	return nil
}

func writeAttr(w *binary.Writer, a *attribute) error {
	writeDatatype(w, a.dt)
	if err := writeSpace(w, a.space); err != nil {
		return err
	}
	w.WriteBlob(a.data)
	return nil
}

func readAttr(r *binary.Reader) *attribute {
	return &attribute{
		dt:    readDatatype(r),
		space: readSpace(r),
		data:  r.ReadBlob(),
	}
}

func writeEntry(w *binary.Writer, e *entry) error {
	writeDatatype(w, e.dt)
	if err := writeSpace(w, e.space); err != nil {
		return err
	}
	if err := writeAttrs(w, e.attrs); err != nil {
		return err
	}

	if e.cfg.DeflateLevel > 0 {
		w.WriteUint8(1)
		w.WriteUint8(uint8(len(e.cfg.Chunks)))
		for _, c := range e.cfg.Chunks {
			w.WriteInt64(c)
		}
		w.WriteUint8(uint8(e.cfg.DeflateLevel))

		compressed, err := filter.NewDeflate(e.cfg.DeflateLevel).Encode(e.data)
		if err != nil {
			return err
		}
		w.WriteUint64(uint64(len(e.data)))
		w.WriteBlob(compressed)
		return nil
	}

	w.WriteUint8(0)
	w.WriteBlob(e.data)
	return nil
}

func readEntry(r *binary.Reader, f *File) (*entry, error) {
	e := &entry{
		file:  f,
		dt:    readDatatype(r),
		space: readSpace(r),
		attrs: attrSet{},
	}
	if err := readAttrs(r, e.attrs); err != nil {
		return nil, err
	}

	switch r.ReadUint8() {
	case 1:
		chunkRank := int(r.ReadUint8())
		chunks := make([]int64, chunkRank)
		for i := range chunks {
			chunks[i] = r.ReadInt64()
		}
		e.cfg = storage.EntryConfig{Chunks: chunks, DeflateLevel: int(r.ReadUint8())}

		rawLen := r.ReadUint64()
		compressed := r.ReadBlob()
		if err := r.Err(); err != nil {
			return nil, err
		}
		data, err := filter.NewDeflate(e.cfg.DeflateLevel).Decode(compressed, int(rawLen))
		if err != nil {
			return nil, err
		}
		e.data = data
	default:
		e.data = r.ReadBlob()
	}

	if err := r.Err(); err != nil {
		return nil, err
	}
	if want := e.space.NumPoints() * int64(e.dt.Size); int64(len(e.data)) != want {
		return nil, fmt.Errorf("payload has %d bytes, shape wants %d", len(e.data), want)
	}
	return e, nil
}
