package egdb

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DiskBlock is the unit the data file is read and cached in.
const DiskBlock = 1 << 10

var (
	ErrShortBlock = errors.New("short block read")
)

// blockCache keeps the most recently used blocks of the data file in memory.
type blockCache struct {
	r         io.ReaderAt
	lastBlock int
	blocks    *lru.Cache[int, []byte]

	hits, reads atomic.Int64
}

func newBlockCache(r io.ReaderAt, size int64, buffers int) (*blockCache, error) {
	blocks, err := lru.New[int, []byte](buffers)
	if err != nil {
		return nil, err
	}
	return &blockCache{
		r:         r,
		lastBlock: int(size / DiskBlock),
		blocks:    blocks,
	}, nil
}

// block returns the contents of block n. Only the last block of the file may
// be shorter than DiskBlock.
func (c *blockCache) block(n int) ([]byte, error) {
	if data, ok := c.blocks.Get(n); ok {
		c.hits.Add(1)
		return data, nil
	}
	data := make([]byte, DiskBlock)
	read, err := c.r.ReadAt(data, int64(n)*DiskBlock)
	if read < DiskBlock {
		if n != c.lastBlock {
			return nil, fmt.Errorf("%w: block %d: %d bytes", ErrShortBlock, n, read)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		data = data[:read]
	}
	c.reads.Add(1)
	c.blocks.Add(n, data)
	return data, nil
}

func (c *blockCache) len() int {
	return c.blocks.Len()
}
