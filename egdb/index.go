package egdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrInvalidIndex = errors.New("invalid database index")
)

// Value is the game-theoretic result of a position for the side to move.
// The numeric values match the ternary digits of the compressed store.
type Value uint8

const (
	Draw Value = iota
	Win
	Loss
	Unknown
)

func (v Value) String() string {
	switch v {
	case Draw:
		return "draw"
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

func parseValue(c byte) (Value, bool) {
	switch c {
	case '+':
		return Win, true
	case '-':
		return Loss, true
	case '=':
		return Draw, true
	default:
		return Unknown, false
	}
}

// index is the parsed index file: every slice up to the piece limit, and the
// first position number stored in each block of the data file.
type index struct {
	slices    map[sliceKey]*slice
	blocks    []int64
	maxPieces int
}

// parseIndex reads an index file made of entries such as:
//
//	BASE1311.26 -
//	S      0    2024/783
//	. 327765    2025
//	E1753920    2026/143
//
// A header ending in two result characters ("BASE0011.51 ==") marks a slice
// holding a single value with no data lines. Parsing stops at the first slice
// with more than limit pieces.
func parseIndex(r io.Reader, limit int) (*index, error) {
	idx := &index{slices: make(map[sliceKey]*slice)}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrInvalidIndex, lineNo, fmt.Sprintf(format, args...))
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		key, kind, err := parseHeader(line)
		if err != nil {
			return nil, fail("%v", err)
		}
		if key.pieces() > limit {
			break
		}
		if _, dup := idx.slices[key]; dup {
			return nil, fail("duplicate slice %s", line)
		}
		idx.maxPieces = max(idx.maxPieces, key.pieces())

		if len(kind) == 2 {
			v, ok := parseValue(kind[1])
			if !ok {
				return nil, fail("invalid result '%c'", kind[1])
			}
			idx.slices[key] = newUniformSlice(key, v)
			continue
		}
		def, ok := parseValue(kind[0])
		if !ok {
			return nil, fail("invalid default result '%c'", kind[0])
		}
		s := newSlice(key, def)

		line, ok = next()
		if !ok || line[0] != 'S' {
			return nil, fail("missing start line")
		}
		pos, block, byteOff, err := parseAddress(line[1:], true)
		if err != nil {
			return nil, fail("%v", err)
		}
		s.startBlock, s.startByte = block, byteOff
		if err := idx.addBlock(block, pos); err != nil {
			return nil, fail("%v", err)
		}

		for {
			line, ok = next()
			if !ok {
				return nil, fail("missing end line")
			}
			if line[0] == 'E' {
				break
			}
			if line[0] != '.' {
				return nil, fail("unexpected line %q", line)
			}
			pos, block, _, err = parseAddress(line[1:], false)
			if err != nil {
				return nil, fail("%v", err)
			}
			if err := idx.addBlock(block, pos); err != nil {
				return nil, fail("%v", err)
			}
		}
		_, block, _, err = parseAddress(line[1:], true)
		if err != nil {
			return nil, fail("%v", err)
		}
		if block < s.startBlock {
			return nil, fail("slice ends before it starts")
		}
		// a slice ending on a block boundary owns no position in that block
		s.endBlock = min(block, len(idx.blocks)-1)
		idx.slices[key] = s
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	if len(idx.slices) == 0 {
		return nil, fmt.Errorf("%w: no slices", ErrInvalidIndex)
	}
	return idx, nil
}

// addBlock records the first position number of a newly entered block.
// Blocks must be entered in order without gaps.
func (idx *index) addBlock(block int, pos int64) error {
	last := len(idx.blocks) - 1
	switch {
	case block == last:
		return nil
	case block == last+1:
		idx.blocks = append(idx.blocks, pos)
		return nil
	default:
		return fmt.Errorf("block %d follows block %d", block, last)
	}
}

// parseHeader parses "BASE<bk><wk><bm><wm>.<rbm><rwm> <result>".
func parseHeader(line string) (sliceKey, string, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return sliceKey{}, "", fmt.Errorf("malformed header %q", line)
	}
	name, kind := fields[0], fields[1]
	if len(name) != 11 || !strings.HasPrefix(name, "BASE") || name[8] != '.' || len(kind) > 2 {
		return sliceKey{}, "", fmt.Errorf("malformed header %q", line)
	}
	var d [6]int
	for i, c := range name[4:8] + name[9:] {
		if c < '0' || c > '9' {
			return sliceKey{}, "", fmt.Errorf("malformed header %q", line)
		}
		d[i] = int(c - '0')
	}
	key := sliceKey{bk: d[0], wk: d[1], bm: d[2], wm: d[3], rankBM: d[4], rankWM: d[5]}
	if key.bm+key.bk == 0 || key.wm+key.wk == 0 || key.rankBM > 7 || key.rankWM > 7 {
		return sliceKey{}, "", fmt.Errorf("invalid slice %q", name)
	}
	return key, kind, nil
}

// parseAddress parses "<position> <block>[/<byte>]".
func parseAddress(s string, withByte bool) (int64, int, int, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, 0, fmt.Errorf("malformed address %q", s)
	}
	pos, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || pos < 0 {
		return 0, 0, 0, fmt.Errorf("invalid position %q", fields[0])
	}
	blockStr, byteStr, hasByte := strings.Cut(fields[1], "/")
	if hasByte != withByte {
		return 0, 0, 0, fmt.Errorf("malformed address %q", s)
	}
	block, err := strconv.Atoi(blockStr)
	if err != nil || block < 0 {
		return 0, 0, 0, fmt.Errorf("invalid block %q", blockStr)
	}
	byteOff := 0
	if hasByte {
		byteOff, err = strconv.Atoi(byteStr)
		if err != nil || byteOff < 0 || byteOff >= DiskBlock {
			return 0, 0, 0, fmt.Errorf("invalid byte offset %q", byteStr)
		}
	}
	return pos, block, byteOff, nil
}
