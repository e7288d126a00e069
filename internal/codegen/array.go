package codegen

import (
	"bufio"
	"errors"
	"io"
)

// BytesPerLine is the number of array elements emitted per source line.
const BytesPerLine = 20

const hexDigits = "0123456789abcdef"

// WriteArrayBody streams r into w as the body of a C array initializer:
//
//	 {
//		0x1c, 0x00, ..., 0x54,
//		0x46, 0x4c};
//
// Tokens are lowercase, wrapped every BytesPerLine elements and never followed
// by a trailing comma. An empty reader yields " {};". It returns the number of
// bytes transcoded.
func WriteArrayBody(w io.Writer, r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(" {"); err != nil {
		return 0, err
	}

	var n int64
	tok := [4]byte{'0', 'x', 0, 0}
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return n, err
		}

		sep := ", "
		switch {
		case n == 0:
			sep = "\n\t"
		case n%BytesPerLine == 0:
			sep = ", \n\t"
		}
		if _, err := bw.WriteString(sep); err != nil {
			return n, err
		}

		tok[2] = hexDigits[b>>4]
		tok[3] = hexDigits[b&0x0f]
		if _, err := bw.Write(tok[:]); err != nil {
			return n, err
		}
		n++
	}

	if _, err := bw.WriteString("};\n"); err != nil {
		return n, err
	}
	return n, bw.Flush()
}
