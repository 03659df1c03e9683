package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

func mapTestPage(proc *Process, pgn int, fpn int) {
	proc.pageTable[pgn].SetFPN(fpn)
}

func TestLRUPolicy_TouchMovesToTail(t *testing.T) {
	lru := NewLRUPolicy(4)
	proc := newProcess(1, 2048, false, nil)

	lru.Track(proc, 0, 0)
	lru.Track(proc, 1, 1)
	lru.Track(proc, 2, 2)
	lru.Touch(proc, 0, 0)

	if got := lru.Snapshot(proc); !reflect.DeepEqual(got, []int{1, 2, 0}) {
		t.Fatalf("Expected [1 2 0], got %v", got)
	}

	// tocar la cola no cambia nada ni duplica
	lru.Touch(proc, 0, 0)
	if got := lru.Snapshot(proc); !reflect.DeepEqual(got, []int{1, 2, 0}) {
		t.Errorf("Expected [1 2 0] after touching the tail, got %v", got)
	}

	victim, err := lru.Victim(proc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if victim.FPN != 1 || victim.PGN != 1 || victim.Owner != proc {
		t.Errorf("Expected frame 1 of pid 1 as victim, got %+v", victim)
	}

	// Victim no saca nada hasta Remove
	if len(lru.Snapshot(proc)) != 3 {
		t.Errorf("Expected Victim to leave the list untouched")
	}
	lru.Remove(victim)
	if got := lru.Snapshot(proc); !reflect.DeepEqual(got, []int{2, 0}) {
		t.Errorf("Expected [2 0] after Remove, got %v", got)
	}
}

func TestLRUPolicy_ForgetDropsOnlyOwner(t *testing.T) {
	lru := NewLRUPolicy(4)
	p1 := newProcess(1, 2048, false, nil)
	p2 := newProcess(2, 2048, false, nil)

	lru.Track(p1, 0, 0)
	lru.Track(p2, 0, 1)
	lru.Track(p1, 1, 2)
	lru.Track(p2, 1, 3)

	lru.Forget(p1)
	if got := lru.Snapshot(p2); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Expected [1 3], got %v", got)
	}

	victim, _ := lru.Victim(p1)
	if victim.Owner != p2 || victim.FPN != 1 {
		t.Errorf("Expected frame 1 of pid 2 as victim, got %+v", victim)
	}

	lru.Forget(p2)
	if _, err := lru.Victim(p1); !errors.Is(err, models.ErrNoVictim) {
		t.Errorf("Expected ErrNoVictim on empty list, got %v", err)
	}
}

func TestFIFOPolicy_OldestFirst(t *testing.T) {
	fifo := &FIFOPolicy{}
	proc := newProcess(1, 2048, false, nil)

	for pgn, fpn := range []int{4, 5, 6} {
		mapTestPage(proc, pgn, fpn)
		fifo.Track(proc, pgn, fpn)
	}
	fifo.Touch(proc, 0, 4)

	if got := fifo.Snapshot(proc); !reflect.DeepEqual(got, []int{2, 1, 0}) {
		t.Fatalf("Expected [2 1 0], got %v", got)
	}

	victim, err := fifo.Victim(proc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if victim.PGN != 0 || victim.FPN != 4 {
		t.Errorf("Expected page 0 in frame 4, got %+v", victim)
	}

	fifo.Remove(victim)
	victim, _ = fifo.Victim(proc)
	if victim.PGN != 1 {
		t.Errorf("Expected page 1 next, got %+v", victim)
	}

	fifo.Forget(proc)
	if _, err := fifo.Victim(proc); !errors.Is(err, models.ErrNoVictim) {
		t.Errorf("Expected ErrNoVictim, got %v", err)
	}
}

func TestNewReplacementPolicy(t *testing.T) {
	if NewReplacementPolicy(models.ReplacementLRU, 2).Name() != models.ReplacementLRU {
		t.Errorf("Expected LRU policy")
	}
	if NewReplacementPolicy(models.ReplacementFIFO, 2).Name() != models.ReplacementFIFO {
		t.Errorf("Expected FIFO policy")
	}
}
