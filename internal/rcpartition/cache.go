package rcpartition

import (
	"bufio"
	"container/list"
	"fmt"
	"os"
	"path/filepath"
)

// handleEntry is the value stored in the LRU list: an open, buffered
// bucket file handle.
type handleEntry struct {
	idx int
	f   *os.File
	w   *bufio.Writer
}

// lruFileCache is an LRU cache of open bucket file handles, bounded at
// maxHandles. Ordering is purely by write-time recency, not bucket index.
type lruFileCache struct {
	maxHandles int
	dir        string

	order   *list.List            // front = most recently written
	byIndex map[int]*list.Element // bucket index -> element in order
}

func newLRUFileCache(maxHandles int, dir string) *lruFileCache {
	return &lruFileCache{
		maxHandles: maxHandles,
		dir:        dir,
		order:      list.New(),
		byIndex:    make(map[int]*list.Element),
	}
}

func (c *lruFileCache) path(idx int) string {
	return filepath.Join(c.dir, fmt.Sprintf("bucket_%04d.bin", idx))
}

// write appends data to the bucket at idx, opening (or reopening, after
// eviction) the handle as needed, and moves it to the front of the LRU
// order.
func (c *lruFileCache) write(idx int, data []byte) error {
	if elem, ok := c.byIndex[idx]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*handleEntry)
		_, err := entry.w.Write(data)
		return err
	}

	for c.order.Len() >= c.maxHandles {
		if err := c.evictOldest(); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(c.path(idx), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	entry := &handleEntry{idx: idx, f: f, w: bufio.NewWriterSize(f, BufferSize)}
	elem := c.order.PushFront(entry)
	c.byIndex[idx] = elem

	_, err = entry.w.Write(data)
	return err
}

// evictOldest flushes and closes the least-recently-written handle.
func (c *lruFileCache) evictOldest() error {
	back := c.order.Back()
	if back == nil {
		return nil
	}
	entry := back.Value.(*handleEntry)
	c.order.Remove(back)
	delete(c.byIndex, entry.idx)
	return closeEntry(entry)
}

// openCount reports how many handles are currently open, for tests of the
// LRU-cache eviction property.
func (c *lruFileCache) openCount() int {
	return c.order.Len()
}

// closeAll flushes and closes every open handle, in any order, ignoring
// nothing: the first error encountered is returned after attempting to
// close every remaining handle, so a single bad handle does not leak the
// rest.
func (c *lruFileCache) closeAll() error {
	var firstErr error
	for e := c.order.Front(); e != nil; e = e.Next() {
		entry := e.Value.(*handleEntry)
		if err := closeEntry(entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.order.Init()
	c.byIndex = make(map[int]*list.Element)
	return firstErr
}

func closeEntry(entry *handleEntry) error {
	flushErr := entry.w.Flush()
	closeErr := entry.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
