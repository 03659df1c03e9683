package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

func newTestMemory(t *testing.T, replacement string, ramSize int, swapSizes []int) *Memory {
	t.Helper()
	memory, err := NewMemory(&models.Config{
		RamSize:     ramSize,
		SwapSizes:   swapSizes,
		VMemSize:    2048,
		Replacement: replacement,
		DumpPath:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error creating memory: %v", err)
	}
	return memory
}

func newTestProcess(t *testing.T, memory *Memory, pid int) *Process {
	t.Helper()
	proc, err := memory.CreateProcess(pid, 0)
	if err != nil {
		t.Fatalf("unexpected error creating process %d: %v", pid, err)
	}
	return proc
}

func mustAlloc(t *testing.T, memory *Memory, pid int, size int, reg int) int {
	t.Helper()
	addr, err := memory.Alloc(pid, size, reg)
	if err != nil {
		t.Fatalf("unexpected error in alloc pid %d reg %d: %v", pid, reg, err)
	}
	return addr
}

// checkFrameAccounting verifica que frames libres + páginas presentes = frames de la RAM.
func checkFrameAccounting(t *testing.T, memory *Memory) {
	t.Helper()
	present := 0
	seen := make(map[int]bool)
	for _, pid := range memory.PIDs() {
		proc, _ := memory.GetProcess(pid)
		for _, pte := range proc.pageTable {
			if loc := pte.Location(); loc.Kind == models.Resident {
				if seen[loc.Frame] {
					t.Errorf("frame %d mapped twice", loc.Frame)
				}
				seen[loc.Frame] = true
				present++
			}
		}
	}
	for _, fpn := range memory.RAM().FreeFrames() {
		if seen[fpn] {
			t.Errorf("frame %d is free and mapped", fpn)
		}
	}
	if present+memory.RAM().FreeFrameCount() != memory.RAM().FrameCount() {
		t.Errorf("Expected %d frames, got %d present + %d free", memory.RAM().FrameCount(), present, memory.RAM().FreeFrameCount())
	}
}

func TestFIFO_EvictsOldestRegardlessOfReads(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 2*models.PageSize, []int{1024})
	proc := newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 256, 0)
	mustAlloc(t, memory, 1, 256, 1)
	if _, err := memory.Read(1, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustAlloc(t, memory, 1, 256, 2)

	if loc := proc.PTE(0).Location(); loc.Kind != models.Swapped || loc.Device != 0 || loc.Offset != 0 {
		t.Errorf("Expected page 0 swapped at (0, 0), got %+v", loc)
	}
	if loc := proc.PTE(1).Location(); loc.Kind != models.Resident || loc.Frame != 1 {
		t.Errorf("Expected page 1 resident in frame 1, got %+v", loc)
	}
	if loc := proc.PTE(2).Location(); loc.Kind != models.Resident || loc.Frame != 0 {
		t.Errorf("Expected page 2 resident in frame 0, got %+v", loc)
	}
	checkFrameAccounting(t, memory)
}

func TestLRU_ReadProtectsPage(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementLRU, 2*models.PageSize, []int{1024})
	proc := newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 256, 0)
	mustAlloc(t, memory, 1, 256, 1)
	if _, err := memory.Read(1, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustAlloc(t, memory, 1, 256, 2)

	if proc.PTE(0).Location().Kind != models.Resident {
		t.Errorf("Expected page 0 resident, got %+v", proc.PTE(0).Location())
	}
	if proc.PTE(1).Location().Kind != models.Swapped {
		t.Errorf("Expected page 1 swapped, got %+v", proc.PTE(1).Location())
	}
	if loc := proc.PTE(2).Location(); loc.Kind != models.Resident || loc.Frame != 1 {
		t.Errorf("Expected page 2 in frame 1, got %+v", loc)
	}
	checkFrameAccounting(t, memory)
}

func TestDemandPaging_RoundTrip(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 2*models.PageSize, []int{1024})
	proc := newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 256, 0)
	if err := memory.Write(1, 42, 0, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustAlloc(t, memory, 1, 256, 1)
	mustAlloc(t, memory, 1, 256, 2)

	if proc.PTE(0).Location().Kind != models.Swapped {
		t.Fatalf("Expected page 0 swapped before reading it back")
	}
	if !proc.PTE(0).Dirty() {
		t.Errorf("Expected page 0 to keep its dirty bit in swap")
	}

	value, err := memory.Read(1, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 42 {
		t.Errorf("Expected 42 after swap in, got %d", value)
	}

	if proc.PTE(0).Location().Kind != models.Resident {
		t.Errorf("Expected page 0 resident after fault")
	}
	if loc := proc.PTE(1).Location(); loc.Kind != models.Swapped || loc.Offset != 1 {
		t.Errorf("Expected page 1 swapped at slot 1, got %+v", loc)
	}

	// el frame de swap de la página 0 volvió al dispositivo
	swap, _ := proc.Swap().Device(0)
	if swap.FreeFrameCount() != 3 {
		t.Errorf("Expected 3 free swap frames, got %d", swap.FreeFrameCount())
	}
	checkFrameAccounting(t, memory)
}

func TestOutOfSwap_LeavesStateIntact(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, models.PageSize, []int{models.PageSize})
	proc := newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 256, 0)
	mustAlloc(t, memory, 1, 256, 1)

	_, err := memory.Alloc(1, 256, 2)
	if !errors.Is(err, models.ErrOutOfSwap) {
		t.Fatalf("Expected ErrOutOfSwap, got %v", err)
	}
	if models.StatusFromError(err) != models.StatusOutOfSwap {
		t.Errorf("Expected status %d, got %d", models.StatusOutOfSwap, models.StatusFromError(err))
	}

	vma, _ := proc.VMA(DataVMA)
	if vma.End != 512 || vma.Sbrk != 512 {
		t.Errorf("Expected data area unchanged at end 512, got end %d sbrk %d", vma.End, vma.Sbrk)
	}
	if region, _ := proc.Region(2); !region.Empty() {
		t.Errorf("Expected region 2 unused, got %+v", region)
	}
	if proc.PTE(1).Location().Kind != models.Resident {
		t.Errorf("Expected page 1 still resident")
	}
	checkFrameAccounting(t, memory)

	// el proceso sigue funcionando
	if err := memory.Write(1, 5, 1, 0); err != nil {
		t.Errorf("Expected write on resident page to succeed, got %v", err)
	}
}

func TestSwap_SwitchesActiveDevice(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, models.PageSize, []int{models.PageSize, 2 * models.PageSize})
	proc := newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 256, 0)
	mustAlloc(t, memory, 1, 256, 1)
	if proc.Swap().Active() != 0 {
		t.Fatalf("Expected device 0 active after first eviction")
	}
	mustAlloc(t, memory, 1, 256, 2)

	if proc.Swap().Active() != 1 {
		t.Errorf("Expected device 1 active, got %d", proc.Swap().Active())
	}
	if loc := proc.PTE(1).Location(); loc.Kind != models.Swapped || loc.Device != 1 {
		t.Errorf("Expected page 1 in device 1, got %+v", loc)
	}
}

func TestLRU_EvictsIntoOwnerSwap(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementLRU, 2*models.PageSize, []int{1024})
	p1 := newTestProcess(t, memory, 1)
	p2 := newTestProcess(t, memory, 2)

	mustAlloc(t, memory, 1, 256, 0)
	mustAlloc(t, memory, 2, 256, 0)
	mustAlloc(t, memory, 2, 256, 1)

	if p1.PTE(0).Location().Kind != models.Swapped {
		t.Errorf("Expected pid 1 page 0 swapped, got %+v", p1.PTE(0).Location())
	}
	swap1, _ := p1.Swap().Device(0)
	swap2, _ := p2.Swap().Device(0)
	if swap1.FreeFrameCount() != 3 || swap2.FreeFrameCount() != 4 {
		t.Errorf("Expected the victim in its owner's swap, got free %d (pid 1) and %d (pid 2)", swap1.FreeFrameCount(), swap2.FreeFrameCount())
	}
	checkFrameAccounting(t, memory)
}

func TestFIFO_NoVictimOfRequester(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 2*models.PageSize, []int{1024})
	newTestProcess(t, memory, 1)
	newTestProcess(t, memory, 2)

	mustAlloc(t, memory, 1, 512, 0)

	_, err := memory.Alloc(2, 10, 0)
	if !errors.Is(err, models.ErrNoVictim) {
		t.Errorf("Expected ErrNoVictim, got %v", err)
	}
	if models.StatusFromError(err) != models.StatusFailure {
		t.Errorf("Expected generic failure status")
	}
}

func TestOverlap(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 2048, []int{2048})
	proc := newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 1100, 0)
	data, _ := proc.VMA(DataVMA)
	if data.End != 1280 {
		t.Fatalf("Expected data end 1280, got %d", data.End)
	}

	_, err := memory.Malloc(1, 1024, 1)
	if !errors.Is(err, models.ErrOverlap) {
		t.Fatalf("Expected ErrOverlap, got %v", err)
	}
	heap, _ := proc.VMA(HeapVMA)
	if heap.End != 2048 || heap.Sbrk != 2048 {
		t.Errorf("Expected heap untouched, got end %d sbrk %d", heap.End, heap.Sbrk)
	}

	addr, err := memory.Malloc(1, 768, 1)
	if err != nil {
		t.Fatalf("Expected heap to reach the data area boundary, got %v", err)
	}
	if addr != 2047 || heap.End != 1280 {
		t.Errorf("Expected address 2047 and heap end 1280, got %d and %d", addr, heap.End)
	}
	checkFrameAccounting(t, memory)
}

func TestOverlap_DataIntoHeap(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 2048, []int{2048})
	newTestProcess(t, memory, 1)

	if _, err := memory.Malloc(1, 1100, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := memory.Alloc(1, 1024, 1); !errors.Is(err, models.ErrOverlap) {
		t.Errorf("Expected ErrOverlap, got %v", err)
	}
	if memory.RAM().FreeFrameCount() != 3 {
		t.Errorf("Expected 3 free frames, got %d", memory.RAM().FreeFrameCount())
	}
}

func TestOutOfVirtualMemory(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 1024, []int{1024})
	newTestProcess(t, memory, 1)

	if _, err := memory.Alloc(1, 4096, 0); !errors.Is(err, models.ErrOutOfVirtualMemory) {
		t.Errorf("Expected ErrOutOfVirtualMemory on alloc, got %v", err)
	}
	if _, err := memory.Malloc(1, 4096, 1); !errors.Is(err, models.ErrOutOfVirtualMemory) {
		t.Errorf("Expected ErrOutOfVirtualMemory on malloc, got %v", err)
	}
	if memory.RAM().FreeFrameCount() != 4 {
		t.Errorf("Expected no frames used, got %d free", memory.RAM().FreeFrameCount())
	}
}

func TestAllocFreeReuse(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 1024, []int{1024})
	proc := newTestProcess(t, memory, 1)

	addr := mustAlloc(t, memory, 1, 300, 0)
	data, _ := proc.VMA(DataVMA)
	if addr != 0 || data.End != 512 {
		t.Fatalf("Expected address 0 and end 512, got %d and %d", addr, data.End)
	}

	if err := memory.Write(1, 7, 0, 299); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value, _ := memory.Read(1, 0, 299); value != 7 {
		t.Errorf("Expected 7, got %d", value)
	}

	if err := memory.Free(1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if region, _ := proc.Region(0); !region.Empty() {
		t.Errorf("Expected region 0 cleared, got %+v", region)
	}
	if free := data.FreeRegions(); free[0] != (models.Region{Start: 0, End: 300, VMAID: DataVMA}) {
		t.Errorf("Expected [0, 300) at the head of the free list, got %v", free)
	}

	addr = mustAlloc(t, memory, 1, 300, 1)
	if addr != 0 {
		t.Errorf("Expected freed range to be reused, got %d", addr)
	}
	if value, _ := memory.Read(1, 1, 299); value != 0 {
		t.Errorf("Expected freed byte to be zero, got %d", value)
	}
	if len(data.FreeRegions()) != 1 {
		t.Errorf("Expected only the initial empty region left, got %v", data.FreeRegions())
	}

	addr = mustAlloc(t, memory, 1, 100, 2)
	if addr != 300 || data.End != 512 {
		t.Errorf("Expected address 300 without growing, got %d (end %d)", addr, data.End)
	}
	if memory.RAM().FreeFrameCount() != 2 {
		t.Errorf("Expected 2 free frames, got %d", memory.RAM().FreeFrameCount())
	}
}

func TestFirstFitShrinksFreeRegion(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 1024, []int{1024})
	proc := newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 200, 0)
	_ = memory.Free(1, 0)

	addr := mustAlloc(t, memory, 1, 50, 1)
	if addr != 0 {
		t.Fatalf("Expected address 0, got %d", addr)
	}
	data, _ := proc.VMA(DataVMA)
	if free := data.FreeRegions(); free[0] != (models.Region{Start: 50, End: 200, VMAID: DataVMA}) {
		t.Errorf("Expected [50, 200) left, got %v", free)
	}
}

func TestInvalidRegionOperations(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 1024, []int{1024})
	newTestProcess(t, memory, 1)
	mustAlloc(t, memory, 1, 10, 0)

	cases := map[string]error{
		"free unused":       memory.Free(1, 5),
		"free out of range": memory.Free(1, models.MaxSymbols),
		"write past end":    memory.Write(1, 1, 0, 10),
		"write negative":    memory.Write(1, 1, 0, -1),
	}
	_, cases["alloc used reg"] = memory.Alloc(1, 10, 0)
	_, cases["alloc zero size"] = memory.Alloc(1, 0, 1)
	_, cases["read unused"] = memory.Read(1, 3, 0)

	for name, err := range cases {
		if !errors.Is(err, models.ErrInvalidRegion) {
			t.Errorf("%s: expected ErrInvalidRegion, got %v", name, err)
		}
	}

	if _, err := memory.Read(99, 0, 0); !errors.Is(err, models.ErrProcessNotFound) {
		t.Errorf("Expected ErrProcessNotFound, got %v", err)
	}
}

func TestHeapGrowsDown(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 1024, []int{1024})
	proc := newTestProcess(t, memory, 1)

	addr, err := memory.Malloc(1, 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != 2047 {
		t.Errorf("Expected address 2047, got %d", addr)
	}
	if err := memory.Write(1, 9, 3, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc := proc.PTE(7).Location()
	if loc.Kind != models.Resident {
		t.Fatalf("Expected page 7 resident, got %+v", loc)
	}
	value, _ := memory.RAM().Read(loc.Frame * models.PageSize)
	if value != 9 {
		t.Errorf("Expected byte at the start of the frame, got %d", value)
	}

	second, _ := memory.Malloc(1, 10, 4)
	if second != 2037 {
		t.Errorf("Expected address 2037, got %d", second)
	}
}

func TestHeapGrowsUp(t *testing.T) {
	memory, err := NewMemory(&models.Config{
		RamSize:     1024,
		SwapSizes:   []int{1024},
		VMemSize:    2048,
		Replacement: models.ReplacementLRU,
		HeapGrowsUp: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	newTestProcess(t, memory, 1)

	addr, err := memory.Malloc(1, 10, 0)
	if err != nil || addr != 1024 {
		t.Errorf("Expected heap to start at 1024, got %d (%v)", addr, err)
	}
	if _, err := memory.Alloc(1, 1100, 1); !errors.Is(err, models.ErrOverlap) {
		t.Errorf("Expected ErrOverlap growing data into the heap, got %v", err)
	}
}

func TestReleaseProcess(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementLRU, 2*models.PageSize, []int{1024})
	proc := newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 256, 0)
	mustAlloc(t, memory, 1, 256, 1)
	mustAlloc(t, memory, 1, 256, 2)

	if err := memory.ReleaseProcess(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if memory.RAM().FreeFrameCount() != 2 {
		t.Errorf("Expected all RAM frames free, got %d", memory.RAM().FreeFrameCount())
	}
	swap, _ := proc.Swap().Device(0)
	if swap.FreeFrameCount() != 4 {
		t.Errorf("Expected all swap frames free, got %d", swap.FreeFrameCount())
	}
	if len(memory.Policy().Snapshot(proc)) != 0 {
		t.Errorf("Expected LRU list empty after release")
	}
	if err := memory.ReleaseProcess(1); !errors.Is(err, models.ErrProcessNotFound) {
		t.Errorf("Expected ErrProcessNotFound, got %v", err)
	}
}

func TestCreateProcessErrors(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 1024, []int{1024})
	newTestProcess(t, memory, 1)

	if _, err := memory.CreateProcess(1, 0); !errors.Is(err, models.ErrProcessExists) {
		t.Errorf("Expected ErrProcessExists, got %v", err)
	}
	if _, err := memory.CreateProcess(2, 1000); !errors.Is(err, models.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for vmem 1000, got %v", err)
	}

	proc, err := memory.CreateProcess(3, 4096)
	if err != nil || proc.VMemSize != 4096 {
		t.Errorf("Expected process with 4096 bytes, got %v", err)
	}
}

func TestConcurrentProcesses(t *testing.T) {
	memory, err := NewMemory(&models.Config{
		RamSize:     4 * models.PageSize,
		SwapSizes:   []int{8 * models.PageSize},
		VMemSize:    4096,
		Replacement: models.ReplacementLRU,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const processes = 4
	var wg sync.WaitGroup
	errs := make(chan error, processes)

	for pid := 1; pid <= processes; pid++ {
		newTestProcess(t, memory, pid)
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			if _, err := memory.Alloc(pid, 1024, 0); err != nil {
				errs <- err
				return
			}
			for offset := 0; offset < 1024; offset += 32 {
				if err := memory.Write(pid, byte(pid*10+offset%7), 0, offset); err != nil {
					errs <- err
					return
				}
			}
			for offset := 0; offset < 1024; offset += 32 {
				value, err := memory.Read(pid, 0, offset)
				if err != nil {
					errs <- err
					return
				}
				if value != byte(pid*10+offset%7) {
					errs <- fmt.Errorf("pid %d offset %d: expected %d, got %d", pid, offset, pid*10+offset%7, value)
					return
				}
			}
		}(pid)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	checkFrameAccounting(t, memory)
}

func TestExecuteDumpMemory(t *testing.T) {
	memory := newTestMemory(t, models.ReplacementFIFO, 2*models.PageSize, []int{1024})
	newTestProcess(t, memory, 1)

	mustAlloc(t, memory, 1, 256, 0)
	_ = memory.Write(1, 0x2A, 0, 0)
	mustAlloc(t, memory, 1, 256, 1)
	mustAlloc(t, memory, 1, 256, 2)

	file, dump, err := memory.ExecuteDumpMemory(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dump.PageTable) != 3 || len(dump.Symbols) != 3 {
		t.Errorf("Expected 3 pages and 3 regions, got %d and %d", len(dump.PageTable), len(dump.Symbols))
	}
	if dump.PageTable[0].Location.Kind != models.Swapped {
		t.Errorf("Expected page 0 swapped in dump, got %+v", dump.PageTable[0])
	}
	if dump.RamFreeFrames != 0 || dump.RamMappedFrames != 2 {
		t.Errorf("Expected 2 mapped frames and 0 free, got %d and %d", dump.RamMappedFrames, dump.RamFreeFrames)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Expected dump file, got %v", err)
	}
	for _, want := range []string{"PID: 1", "Página: 0 -> Swap: 0 Offset: 0", "Región: 2", "== Reemplazo FIFO =="} {
		if !strings.Contains(string(content), want) {
			t.Errorf("Expected %q in dump file", want)
		}
	}
}
