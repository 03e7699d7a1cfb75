package lockmgr

import (
	"sync"
	"testing"
	"time"

	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
)

func TestAcquireUnknownISBN(t *testing.T) {
	reg := NewLockRegistry(nil)

	err := reg.Acquire(42, LockModeRead)
	if err == nil {
		t.Fatal("expected error for unregistered ISBN")
	}
	if code := bookstore.CodeOf(err); code != bookstore.RetCUnknownISBN {
		t.Errorf("expected RetCUnknownISBN, got %s", code)
	}
}

func TestRegisterAcquireRelease(t *testing.T) {
	reg := NewLockRegistry(nil)
	reg.Register(1)

	if err := reg.Acquire(1, LockModeWrite); err != nil {
		t.Fatalf("failed to acquire write lock: %v", err)
	}
	if !reg.Release(1, LockModeWrite) {
		t.Error("release of a held write lock should succeed")
	}

	if err := reg.Acquire(1, LockModeRead); err != nil {
		t.Fatalf("failed to acquire read lock: %v", err)
	}
	if !reg.Release(1, LockModeRead) {
		t.Error("release of a held read lock should succeed")
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	reg := NewLockRegistry(nil)
	reg.Register(1)

	if err := reg.Acquire(1, LockModeWrite); err != nil {
		t.Fatalf("failed to acquire write lock: %v", err)
	}

	// A second Register must not replace the held lock.
	reg.Register(1)

	acquired := make(chan struct{})
	go func() {
		if err := reg.Acquire(1, LockModeWrite); err != nil {
			t.Errorf("failed to acquire write lock: %v", err)
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired the lock while it was held")
	case <-time.After(50 * time.Millisecond):
	}

	reg.Release(1, LockModeWrite)

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second writer never acquired the lock after release")
	}
	reg.Release(1, LockModeWrite)
}

func TestReleaseNotHeld(t *testing.T) {
	reg := NewLockRegistry(nil)

	// Unregistered ISBN: must not panic, must report failure.
	if reg.Release(7, LockModeWrite) {
		t.Error("release of an unregistered lock should return false")
	}

	// Registered but never acquired.
	reg.Register(7)
	if reg.Release(7, LockModeWrite) {
		t.Error("release of an unheld write lock should return false")
	}
	if reg.Release(7, LockModeRead) {
		t.Error("release of an unheld read lock should return false")
	}
}

func TestSharedReaders(t *testing.T) {
	reg := NewLockRegistry(nil)
	reg.Register(1)

	// Two readers must hold the lock simultaneously.
	if err := reg.Acquire(1, LockModeRead); err != nil {
		t.Fatalf("first reader: %v", err)
	}
	done := make(chan struct{})
	go func() {
		if err := reg.Acquire(1, LockModeRead); err != nil {
			t.Errorf("second reader: %v", err)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second reader blocked behind first reader")
	}

	reg.Release(1, LockModeRead)
	reg.Release(1, LockModeRead)
}

func TestWriterExcludesReaders(t *testing.T) {
	reg := NewLockRegistry(nil)
	reg.Register(1)

	if err := reg.Acquire(1, LockModeWrite); err != nil {
		t.Fatalf("writer: %v", err)
	}

	readerDone := make(chan struct{})
	go func() {
		if err := reg.Acquire(1, LockModeRead); err != nil {
			t.Errorf("reader: %v", err)
		}
		close(readerDone)
	}()

	select {
	case <-readerDone:
		t.Fatal("reader acquired the lock while a writer held it")
	case <-time.After(50 * time.Millisecond):
	}

	reg.Release(1, LockModeWrite)

	select {
	case <-readerDone:
	case <-time.After(time.Second):
		t.Fatal("reader never acquired the lock after writer release")
	}
	reg.Release(1, LockModeRead)
}

func TestUnregister(t *testing.T) {
	reg := NewLockRegistry(nil)
	reg.Register(1)
	reg.Register(2)

	if reg.Len() != 2 {
		t.Fatalf("expected 2 registered locks, got %d", reg.Len())
	}

	reg.Unregister(1)
	if err := reg.Acquire(1, LockModeRead); err == nil {
		t.Error("expected error after Unregister")
	}
	if err := reg.Acquire(2, LockModeRead); err != nil {
		t.Errorf("unrelated lock affected by Unregister: %v", err)
	}
	reg.Release(2, LockModeRead)

	reg.Clear()
	if reg.Len() != 0 {
		t.Errorf("expected empty registry after Clear, got %d", reg.Len())
	}
}

func TestConcurrentDisjointAcquires(t *testing.T) {
	reg := NewLockRegistry(nil)
	const n = 64
	for i := 0; i < n; i++ {
		reg.Register(i)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(isbn int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := reg.Acquire(isbn, LockModeWrite); err != nil {
					t.Errorf("acquire %d: %v", isbn, err)
					return
				}
				reg.Release(isbn, LockModeWrite)
			}
		}(i)
	}
	wg.Wait()
}
