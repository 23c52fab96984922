package proof

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/heavypackets/varisat/lit"
)

func writeUvarint(w io.Writer, buf []byte, x uint64) error {
	n := binary.PutUvarint(buf, x)
	_, err := w.Write(buf[:n])
	return err
}

// readUvarintEOF reads one varint, returning io.EOF unmodified when
// the stream ends before any byte of the varint is read (a clean step
// boundary), and io.ErrUnexpectedEOF when it ends partway through.
func readUvarintEOF(r *bufio.Reader) (uint64, error) {
	first, err := r.Peek(1)
	if err != nil {
		return 0, err
	}
	_ = first
	x, err := binary.ReadUvarint(r)
	if err != nil {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return x, nil
}

func readUvarint(r *bufio.Reader) (uint64, error) {
	x, err := binary.ReadUvarint(r)
	if err == io.EOF {
		return 0, io.ErrUnexpectedEOF
	}
	return x, err
}

func writeLiterals(w io.Writer, buf []byte, lits []lit.Lit) error {
	if err := writeUvarint(w, buf, uint64(len(lits))); err != nil {
		return err
	}
	for _, l := range lits {
		if err := writeUvarint(w, buf, uint64(l.Code())); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) readLiterals(r *bufio.Reader) error {
	n, err := readUvarint(r)
	if err != nil {
		return err
	}
	p.lits = p.lits[:0]
	for i := uint64(0); i < n; i++ {
		code, err := readUvarint(r)
		if err != nil {
			return err
		}
		p.lits = append(p.lits, lit.FromCode(uint32(code)))
	}
	return nil
}

func writeHashes(w io.Writer, buf []byte, hashes []lit.Hash) error {
	if err := writeUvarint(w, buf, uint64(len(hashes))); err != nil {
		return err
	}
	for _, h := range hashes {
		if err := writeUvarint(w, buf, uint64(uint32(h))); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) readHashes(r *bufio.Reader) error {
	n, err := readUvarint(r)
	if err != nil {
		return err
	}
	p.hashes = p.hashes[:0]
	for i := uint64(0); i < n; i++ {
		h, err := readUvarint(r)
		if err != nil {
			return err
		}
		p.hashes = append(p.hashes, lit.Hash(uint32(h)))
	}
	return nil
}

func writeUnits(w io.Writer, buf []byte, units []lit.UnitAssertion) error {
	if err := writeUvarint(w, buf, uint64(len(units))); err != nil {
		return err
	}
	for _, u := range units {
		if err := writeUvarint(w, buf, uint64(u.Lit.Code())); err != nil {
			return err
		}
		if err := writeUvarint(w, buf, uint64(uint32(u.Hash))); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) readUnits(r *bufio.Reader) error {
	n, err := readUvarint(r)
	if err != nil {
		return err
	}
	p.units = p.units[:0]
	for i := uint64(0); i < n; i++ {
		code, err := readUvarint(r)
		if err != nil {
			return err
		}
		h, err := readUvarint(r)
		if err != nil {
			return err
		}
		p.units = append(p.units, lit.UnitAssertion{Lit: lit.FromCode(uint32(code)), Hash: lit.Hash(uint32(h))})
	}
	return nil
}
