// Package namerec encodes and decodes the individual name records that
// make up a blob's names segment: a type byte, a little-endian uint16
// payload length, and a payload that is either raw name bytes or a
// front-of-name token reference followed by a raw tail.
//
// Decoding never allocates or copies: Record's Token and Tail fields are
// slices into the caller's underlying buffers, materialized only when the
// caller asks for a concatenated name.
package namerec

import (
	"encoding/binary"

	"github.com/ksymtab/ksymtab/errs"
	"github.com/ksymtab/ksymtab/format"
	"github.com/ksymtab/ksymtab/internal/token"
)

// AppendRecord encodes name (with type typ) against dict and appends the
// resulting record to dst, returning the extended slice. If dict has a
// token matching name's prefix, the payload is a token reference plus the
// raw remainder; otherwise the payload is name's raw bytes.
func AppendRecord(dst []byte, typ format.SymbolType, name []byte, dict *token.Dictionary) ([]byte, error) {
	var payloadLen int
	id, tokLen, hasToken := -1, 0, false
	if dict != nil && dict.Count() > 0 {
		id, tokLen, hasToken = dict.MatchPrefix(name)
	}

	idWidth := 0
	if hasToken {
		idWidth = dict.IDWidth()
		payloadLen = 1 + idWidth + 1 + (len(name) - tokLen)
	} else {
		payloadLen = len(name)
	}

	if payloadLen > format.MaxPayloadLen {
		return nil, errs.ErrEncodedNameTooLong
	}

	dst = append(dst, byte(typ))
	dst = binary.LittleEndian.AppendUint16(dst, uint16(payloadLen))

	if !hasToken {
		return append(dst, name...), nil
	}

	dst = append(dst, format.TokenMarker)
	if idWidth == 1 {
		dst = append(dst, byte(id))
	} else {
		dst = append(dst, byte(id>>8), byte(id))
	}
	dst = append(dst, format.TokenMarker)
	dst = append(dst, name[tokLen:]...)

	return dst, nil
}

// Record is a decoded view over one name record. Token and Tail are
// slices into the dictionary table and names buffer respectively; neither
// is copied. TotalLen is the number of names-buffer bytes the record
// occupies, header included, so the reader can advance to the next record.
type Record struct {
	Type     format.SymbolType
	Token    []byte
	Tail     []byte
	TotalLen int
}

// Decode parses the record starting at offset in data. dict resolves any
// token reference found in the payload.
func Decode(data []byte, offset int, dict *token.Dictionary) (Record, error) {
	if offset+format.TyLen+format.LengthBytes > len(data) {
		return Record{}, errs.ErrMalformedRecord
	}

	typ := format.SymbolType(data[offset])
	lenOff := offset + format.TyLen
	payloadLen := int(binary.LittleEndian.Uint16(data[lenOff : lenOff+format.LengthBytes]))
	payloadOff := lenOff + format.LengthBytes

	if payloadOff+payloadLen > len(data) {
		return Record{}, errs.ErrMalformedRecord
	}
	payload := data[payloadOff : payloadOff+payloadLen]
	totalLen := format.TyLen + format.LengthBytes + payloadLen

	if payloadLen == 0 || payload[0] != format.TokenMarker {
		return Record{Type: typ, Tail: payload, TotalLen: totalLen}, nil
	}

	idWidth := 1
	if dict != nil {
		idWidth = dict.IDWidth()
	}

	markerEnd := 1 + idWidth + 1
	if markerEnd > len(payload) {
		return Record{}, errs.ErrMalformedRecord
	}
	if payload[markerEnd-1] != format.TokenMarker {
		return Record{}, errs.ErrMalformedRecord
	}

	var id int
	if idWidth == 1 {
		id = int(payload[1])
	} else {
		id = int(payload[1])<<8 | int(payload[2])
	}

	if dict == nil || id >= dict.Count() {
		return Record{}, errs.ErrMalformedRecord
	}

	return Record{
		Type:     typ,
		Token:    dict.Bytes(id),
		Tail:     payload[markerEnd:],
		TotalLen: totalLen,
	}, nil
}

// Len returns the decoded name's byte length without materializing it.
func (r Record) Len() int {
	return len(r.Token) + len(r.Tail)
}

// AppendName materializes the full decoded name by appending it to dst.
func (r Record) AppendName(dst []byte) []byte {
	dst = append(dst, r.Token...)
	dst = append(dst, r.Tail...)
	return dst
}

// CompareName lexicographically compares the decoded name to q, byte by
// byte, without ever materializing the name into a contiguous buffer.
func (r Record) CompareName(q []byte) int {
	i := 0
	for i < len(r.Token) && i < len(q) {
		if d := int(r.Token[i]) - int(q[i]); d != 0 {
			return d
		}
		i++
	}
	if i < len(r.Token) {
		// q exhausted inside the token part.
		qRemaining := q[i:]
		tokRemaining := r.Token[i:]
		n := min(len(tokRemaining), len(qRemaining))
		for k := range n {
			if d := int(tokRemaining[k]) - int(qRemaining[k]); d != 0 {
				return d
			}
		}
		return len(tokRemaining) - len(qRemaining)
	}

	qTail := q[i:]
	j := 0
	for j < len(r.Tail) && j < len(qTail) {
		if d := int(r.Tail[j]) - int(qTail[j]); d != 0 {
			return d
		}
		j++
	}

	return len(r.Tail) - len(qTail)
}
