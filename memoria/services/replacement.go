package services

import (
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

// Victim es la página residente elegida para salir de RAM.
type Victim struct {
	Owner *Process
	PGN   int
	FPN   int
}

// ReplacementPolicy decide qué página desalojar cuando no quedan frames libres.
// Victim solo elige; la entrada se saca con Remove una vez que la página quedó en swap.
type ReplacementPolicy interface {
	Name() string
	Track(proc *Process, pgn int, fpn int)
	Touch(proc *Process, pgn int, fpn int)
	Victim(requester *Process) (Victim, error)
	Remove(victim Victim)
	Forget(proc *Process)
	Snapshot(proc *Process) []int
}

// NewReplacementPolicy arma la política configurada. frames es la cantidad de frames de RAM.
func NewReplacementPolicy(name string, frames int) ReplacementPolicy {
	if name == models.ReplacementLRU {
		return NewLRUPolicy(frames)
	}
	return &FIFOPolicy{}
}

// ---------------- FIFO ----------------

// FIFOPolicy usa la cola propia de cada proceso: las páginas nuevas entran por la cabeza
// y la víctima es la del final. Las lecturas y escrituras no cambian el orden.
type FIFOPolicy struct{}

func (p *FIFOPolicy) Name() string { return models.ReplacementFIFO }

func (p *FIFOPolicy) Track(proc *Process, pgn int, fpn int) {
	proc.fifo.Prepend(pgn)
}

func (p *FIFOPolicy) Touch(proc *Process, pgn int, fpn int) {}

func (p *FIFOPolicy) Victim(requester *Process) (Victim, error) {
	pgn, err := requester.fifo.Last()
	if err != nil {
		return Victim{}, models.ErrNoVictim
	}
	return Victim{Owner: requester, PGN: pgn, FPN: requester.pageTable[pgn].FPN()}, nil
}

func (p *FIFOPolicy) Remove(victim Victim) {
	victim.Owner.fifo.RemoveWhere(func(pgn int) bool { return pgn == victim.PGN })
}

func (p *FIFOPolicy) Forget(proc *Process) {
	for proc.fifo.Size() > 0 {
		_, _ = proc.fifo.Pop()
	}
}

// Snapshot devuelve los números de página desde el último que entró hasta el próximo a salir.
func (p *FIFOPolicy) Snapshot(proc *Process) []int {
	return proc.fifo.GetAll()
}

// ---------------- LRU ----------------

const nilFrame = -1

// LRUPolicy es una única lista doblemente enlazada para toda la RAM, indexada por número de frame.
// La cabeza es el frame usado hace más tiempo, la cola el último tocado.
type LRUPolicy struct {
	mu     sync.Mutex
	prev   []int
	next   []int
	inList []bool
	owner  []*Process
	pgn    []int
	head   int
	tail   int
}

func NewLRUPolicy(frames int) *LRUPolicy {
	p := &LRUPolicy{
		prev:   make([]int, frames),
		next:   make([]int, frames),
		inList: make([]bool, frames),
		owner:  make([]*Process, frames),
		pgn:    make([]int, frames),
		head:   nilFrame,
		tail:   nilFrame,
	}
	for i := range p.prev {
		p.prev[i] = nilFrame
		p.next[i] = nilFrame
	}
	return p
}

func (p *LRUPolicy) Name() string { return models.ReplacementLRU }

func (p *LRUPolicy) unlink(fpn int) {
	if !p.inList[fpn] {
		return
	}
	if p.prev[fpn] != nilFrame {
		p.next[p.prev[fpn]] = p.next[fpn]
	} else {
		p.head = p.next[fpn]
	}
	if p.next[fpn] != nilFrame {
		p.prev[p.next[fpn]] = p.prev[fpn]
	} else {
		p.tail = p.prev[fpn]
	}
	p.prev[fpn] = nilFrame
	p.next[fpn] = nilFrame
	p.inList[fpn] = false
	p.owner[fpn] = nil
}

func (p *LRUPolicy) appendTail(fpn int) {
	p.prev[fpn] = p.tail
	p.next[fpn] = nilFrame
	if p.tail != nilFrame {
		p.next[p.tail] = fpn
	} else {
		p.head = fpn
	}
	p.tail = fpn
	p.inList[fpn] = true
}

func (p *LRUPolicy) touch(proc *Process, pgn int, fpn int) {
	if fpn < 0 || fpn >= len(p.inList) {
		return
	}
	if p.inList[fpn] && p.tail == fpn && p.owner[fpn] == proc && p.pgn[fpn] == pgn {
		return
	}
	p.unlink(fpn)
	p.appendTail(fpn)
	p.owner[fpn] = proc
	p.pgn[fpn] = pgn
}

func (p *LRUPolicy) Track(proc *Process, pgn int, fpn int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch(proc, pgn, fpn)
}

func (p *LRUPolicy) Touch(proc *Process, pgn int, fpn int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch(proc, pgn, fpn)
}

// Victim devuelve el frame menos usado de toda la RAM, sin importar de qué proceso sea.
func (p *LRUPolicy) Victim(requester *Process) (Victim, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.head == nilFrame {
		return Victim{}, models.ErrNoVictim
	}
	return Victim{Owner: p.owner[p.head], PGN: p.pgn[p.head], FPN: p.head}, nil
}

func (p *LRUPolicy) Remove(victim Victim) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if victim.FPN >= 0 && victim.FPN < len(p.inList) {
		p.unlink(victim.FPN)
	}
}

func (p *LRUPolicy) Forget(proc *Process) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for fpn := p.head; fpn != nilFrame; {
		next := p.next[fpn]
		if p.owner[fpn] == proc {
			p.unlink(fpn)
		}
		fpn = next
	}
}

// Snapshot devuelve los frames de la lista global, del menos al más recientemente usado.
// El proceso no filtra nada.
func (p *LRUPolicy) Snapshot(proc *Process) []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	frames := make([]int, 0, len(p.inList))
	for fpn := p.head; fpn != nilFrame; fpn = p.next[fpn] {
		frames = append(frames, fpn)
	}
	return frames
}
