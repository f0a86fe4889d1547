package builder

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/ksymtab/ksymtab/format"
)

// Symbol is one kernel text symbol as ingested from the input stream:
// an address, a type character, and an already-demangled displayed name.
type Symbol struct {
	Addr uint64
	Type format.SymbolType
	Name string
}

// ParseLine parses one `nm -n -C`-style line: `<hex_address> <type_char>
// <displayed_name>`. It reports ok=false for malformed lines and for lines
// whose type character is not T or t; both cases are silently skipped by
// the caller per the ingestion contract, not treated as errors.
func ParseLine(line string) (sym Symbol, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Symbol{}, false
	}

	fields := strings.SplitN(line, " ", 3)
	if len(fields) != 3 {
		return Symbol{}, false
	}

	addr, err := strconv.ParseUint(fields[0], 16, 64)
	if err != nil {
		return Symbol{}, false
	}

	if len(fields[1]) != 1 {
		return Symbol{}, false
	}
	typ := format.SymbolType(fields[1][0])
	if !typ.IsText() {
		return Symbol{}, false
	}

	name := fields[2]
	if name == "" {
		return Symbol{}, false
	}

	return Symbol{Addr: addr, Type: typ, Name: name}, true
}

// Stream parses r line by line and yields every retained (type T or t)
// symbol. Lines that fail to parse, or whose type isn't retained, are
// skipped without being yielded; Stream never surfaces a per-line error,
// matching the builder's documented ingestion leniency. A scanner error
// (e.g. a line exceeding bufio's token buffer) stops iteration early.
func Stream(r io.Reader) iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			sym, ok := ParseLine(scanner.Text())
			if !ok {
				continue
			}
			if !yield(sym) {
				return
			}
		}
	}
}
