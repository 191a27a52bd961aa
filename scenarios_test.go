package uthread

import (
	"testing"
	"time"
)

// TestSharedArrayHandoff mirrors the classic two-thread handoff over
// a shared heap slice: one thread publishes a value the other spins
// waiting for, then the second thread publishes its own value for
// the caller to observe after both have exited. Since our scheduler
// only rotates at safe points, the busy-wait thread must call Gosched
// itself while spinning or it would simply hold the single logical
// thread of control forever and never let the writer run.
func TestSharedArrayHandoff(t *testing.T) {
	resetForTest()
	arr := make([]int, 2)

	writer, err := Create(func(any) any {
		arr[0] = 1
		arr[1] = 1
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Create writer: %v", err)
	}

	reader, err := Create(func(any) any {
		for arr[0] != 1 {
			Gosched()
		}
		arr[1] = 2
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Create reader: %v", err)
	}

	if _, err := Join(writer); err != nil {
		t.Fatalf("Join writer: %v", err)
	}
	if _, err := Join(reader); err != nil {
		t.Fatalf("Join reader: %v", err)
	}

	if arr[1] != 2 {
		t.Fatalf("arr[1] = %d, want 2", arr[1])
	}
}

// TestManyThreadsReportOnce creates a tight sequence of threads, each
// of which reports its own sequence number and a computed value, and
// checks that every sequence number is reported exactly once.
func TestManyThreadsReportOnce(t *testing.T) {
	resetForTest()
	const n = 128
	reports := make(chan int, n)
	ids := make([]ThreadID, n)
	for i := 0; i < n; i++ {
		i := i
		id, err := Create(func(any) any {
			sum := 0
			for k := 0; k <= i; k++ {
				sum += k
			}
			reports <- i
			return sum
		}, nil)
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids[i] = id
	}
	for i, id := range ids {
		result, err := Join(id)
		if err != nil {
			t.Fatalf("Join %d: %v", i, err)
		}
		want := i * (i + 1) / 2
		if result.(int) != want {
			t.Fatalf("thread %d returned %v, want %d", i, result, want)
		}
	}
	close(reports)
	seen := make([]bool, n)
	for i := range reports {
		if seen[i] {
			t.Fatalf("id %d reported more than once", i)
		}
		seen[i] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("id %d never reported", i)
		}
	}
}

// TestBatchedThreadCreation creates the same 128 threads as
// TestManyThreadsReportOnce but in 8 batches of 16 with a pause
// between batches, checking that every batch's completions sum to
// its batch size and the grand total is 128.
func TestBatchedThreadCreation(t *testing.T) {
	resetForTest()
	const batches, perBatch = 8, 16
	var completed int
	batchCounts := make([]int, batches)

	for b := 0; b < batches; b++ {
		ids := make([]ThreadID, perBatch)
		for i := 0; i < perBatch; i++ {
			id, err := Create(func(any) any { return nil }, nil)
			if err != nil {
				t.Fatalf("batch %d create %d: %v", b, i, err)
			}
			ids[i] = id
		}
		for _, id := range ids {
			if _, err := Join(id); err != nil {
				t.Fatalf("batch %d join: %v", b, err)
			}
			batchCounts[b]++
			completed++
		}
		time.Sleep(10 * time.Millisecond)
	}

	for b, c := range batchCounts {
		if c != perBatch {
			t.Fatalf("batch %d completed %d, want %d", b, c, perBatch)
		}
	}
	if completed != batches*perBatch {
		t.Fatalf("completed = %d, want %d", completed, batches*perBatch)
	}
}

// TestSemaphoreGuardedCounterFourThreads is the binary-semaphore
// counter scenario: four threads each increment a shared counter 1000
// times while holding a semaphore initialized to 1, used as a lock;
// the final count must be exactly 4000.
func TestSemaphoreGuardedCounterFourThreads(t *testing.T) {
	resetForTest()
	const lock SemID = 0
	if err := SemInit(lock, false, 1); err != nil {
		t.Fatalf("SemInit: %v", err)
	}
	defer SemDestroy(lock)

	counter := 0
	const workers, increments = 4, 1000
	ids := make([]ThreadID, workers)
	for i := 0; i < workers; i++ {
		id, err := Create(func(any) any {
			for j := 0; j < increments; j++ {
				SemWait(lock)
				counter++
				SemPost(lock)
			}
			return nil
		}, nil)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids[i] = id
	}
	for _, id := range ids {
		if _, err := Join(id); err != nil {
			t.Fatalf("Join: %v", err)
		}
	}
	if counter != workers*increments {
		t.Fatalf("counter = %d, want %d", counter, workers*increments)
	}
}

// TestProducerConsumerSingleSlot is the classic producer/consumer
// pair over a one-slot buffer guarded by two semaphores: empty
// starts full (1) so the producer may go first, full starts empty
// (0) so the consumer must wait for the first item.
func TestProducerConsumerSingleSlot(t *testing.T) {
	resetForTest()
	const empty, full SemID = 0, 1
	if err := SemInit(empty, false, 1); err != nil {
		t.Fatalf("SemInit(empty): %v", err)
	}
	defer SemDestroy(empty)
	if err := SemInit(full, false, 0); err != nil {
		t.Fatalf("SemInit(full): %v", err)
	}
	defer SemDestroy(full)

	const items = 5
	var slot int
	var consumed []int

	producer, err := Create(func(any) any {
		for i := 0; i < items; i++ {
			SemWait(empty)
			slot = i
			SemPost(full)
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Create producer: %v", err)
	}

	consumer, err := Create(func(any) any {
		for i := 0; i < items; i++ {
			SemWait(full)
			consumed = append(consumed, slot)
			SemPost(empty)
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Create consumer: %v", err)
	}

	if _, err := Join(producer); err != nil {
		t.Fatalf("Join producer: %v", err)
	}
	if _, err := Join(consumer); err != nil {
		t.Fatalf("Join consumer: %v", err)
	}

	if len(consumed) != items {
		t.Fatalf("consumed %d items, want %d", len(consumed), items)
	}
	for i, v := range consumed {
		if v != i {
			t.Fatalf("consumed[%d] = %d, want %d", i, v, i)
		}
	}
}

// TestJoinEdgeCases covers the four required edge cases for Join in
// one place: joining an already-exited thread, joining it again,
// joining self, and joining an unknown handle.
func TestJoinEdgeCases(t *testing.T) {
	resetForTest()
	id, err := Create(func(any) any { return "done" }, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if Self() == id {
		t.Fatal("impossible: Self equals freshly created id before any handoff")
	}

	// Give the worker a chance to actually run and exit before we
	// join it, so the immediate-return path below really exercises
	// an already-exited target rather than racing its first dispatch.
	Gosched()

	result, err := Join(id)
	if err != nil {
		t.Fatalf("first Join: %v", err)
	}
	if result.(string) != "done" {
		t.Fatalf("first Join result = %v, want done", result)
	}

	if _, err := Join(id); err != ErrAlreadyJoined {
		t.Fatalf("Join after reap = %v, want ErrAlreadyJoined", err)
	}

	self := Self()
	if _, err := Join(self); err != ErrJoinDeadlock {
		t.Fatalf("Join(self) = %v, want ErrJoinDeadlock", err)
	}

	if _, err := Join(ThreadID(123456789)); err != ErrNoSuchThread {
		t.Fatalf("Join(unknown) = %v, want ErrNoSuchThread", err)
	}
}
