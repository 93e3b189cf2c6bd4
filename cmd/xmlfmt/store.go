package main

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
)

var (
	errStoreNotExists = errors.New("stream does not exist")
	errBufferClosed   = errors.New("write to closed buffer")
)

// store is a named stream of source that may be read, then replaced whole.
type store interface {
	open() (io.ReadCloser, error)
	update() (cleanupWriteCloser, error)
}

type cleanupWriteCloser interface {
	io.WriteCloser
	Cleanup() error
}

func readStore(st store) (_ []byte, rerr error) {
	r, err := st.open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	return ioutil.ReadAll(r)
}

func writeStore(st store, content []byte) (rerr error) {
	w, err := st.update()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Cleanup(); rerr == nil {
			rerr = cerr
		}
	}()
	if _, err := w.Write(content); err != nil {
		return err
	}
	return w.Close()
}

type memStore struct {
	cur     string
	defined bool
}

func (ms *memStore) open() (io.ReadCloser, error) {
	if !ms.defined {
		return nil, errStoreNotExists
	}
	return ioutil.NopCloser(strings.NewReader(ms.cur)), nil
}

func (ms *memStore) update() (cleanupWriteCloser, error) {
	const minSize = 1024
	pb := &pendingBuffer{sink: ms.set}
	if n := len(ms.cur); n > minSize {
		pb.buf.Grow(n)
	} else {
		pb.buf.Grow(minSize)
	}
	return pb, nil
}

func (ms *memStore) set(content string) error {
	ms.cur = content
	ms.defined = true
	return nil
}

type pendingBuffer struct {
	buf    bytes.Buffer
	closed bool
	sink   func(string) error
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) Close() error {
	if !pb.closed {
		pb.closed = true
		return pb.sink(pb.buf.String())
	}
	return nil
}

func (pb *pendingBuffer) Cleanup() error {
	// discards any unclosed content
	pb.closed = true
	return nil
}

// fsStore is a file whose updates atomically replace it, keeping its mode.
type fsStore struct {
	filename string
	fileinfo os.FileInfo
}

func (fst *fsStore) stat() error {
	if fst.fileinfo != nil {
		return nil
	}
	info, err := os.Stat(fst.filename)
	if os.IsNotExist(err) {
		return errStoreNotExists
	} else if err != nil {
		return err
	}
	fst.fileinfo = info
	return nil
}

func (fst *fsStore) open() (io.ReadCloser, error) {
	if err := fst.stat(); err != nil {
		return nil, err
	}
	return os.Open(fst.filename)
}

func (fst *fsStore) update() (cleanupWriteCloser, error) {
	if err := fst.stat(); err != nil {
		return nil, err
	}
	pf, err := renameio.TempFile(filepath.Dir(fst.filename), fst.filename)
	if err != nil {
		return nil, err
	}
	if err := pf.Chmod(fst.fileinfo.Mode().Perm()); err != nil {
		pf.Cleanup()
		return nil, err
	}
	return pendingReplace{pf}, nil
}

// pendingReplace commits on Close; Cleanup after a successful Close is a
// no-op.
type pendingReplace struct{ *renameio.PendingFile }

func (pr pendingReplace) Close() error { return pr.CloseAtomicallyReplace() }
