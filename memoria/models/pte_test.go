package models

import "testing"

func TestSetFPN(t *testing.T) {
	var pte PTE
	pte.SetFPN(MaxFPN)

	if !pte.Present() || pte.Swapped() {
		t.Fatalf("Expected present and not swapped, got %s", pte)
	}
	if pte.FPN() != MaxFPN {
		t.Errorf("Expected fpn %d, got %d", MaxFPN, pte.FPN())
	}

	loc := pte.Location()
	if loc.Kind != Resident || loc.Frame != MaxFPN {
		t.Errorf("Expected resident in frame %d, got %+v", MaxFPN, loc)
	}
}

func TestSetSwap(t *testing.T) {
	pte := InitPTE(true, 12, false, false, 0, 0)
	pte.SetSwap(3, 70000)

	if pte.Present() || !pte.Swapped() {
		t.Fatalf("Expected swapped and not present, got %s", pte)
	}
	if pte.SwapType() != 3 || pte.SwapOffset() != 70000 {
		t.Errorf("Expected swap (3, 70000), got (%d, %d)", pte.SwapType(), pte.SwapOffset())
	}

	loc := pte.Location()
	if loc.Kind != Swapped || loc.Device != 3 || loc.Offset != 70000 {
		t.Errorf("Expected swapped at (3, 70000), got %+v", loc)
	}
}

func TestSwapThenFPNClearsSharedBits(t *testing.T) {
	var pte PTE
	pte.SetSwap(MaxSwapType, MaxSwapOffset)
	pte.SetFPN(1)

	if pte.FPN() != 1 {
		t.Errorf("Expected fpn 1, got %d", pte.FPN())
	}
	if pte&PTESwpOffMask&^PTEFPNMask != 0 {
		t.Errorf("Expected swap offset bits cleared, got %s", pte)
	}
}

func TestDirtySurvivesRelocation(t *testing.T) {
	pte := InitPTE(true, 5, true, false, 0, 0)
	pte.SetSwap(1, 2)
	if !pte.Dirty() {
		t.Errorf("Expected dirty after SetSwap")
	}
	pte.SetFPN(6)
	if !pte.Dirty() {
		t.Errorf("Expected dirty after SetFPN")
	}
	pte.SetDirty(false)
	if pte.Dirty() {
		t.Errorf("Expected clean after SetDirty(false)")
	}
}

func TestEmptyPTEIsUnmapped(t *testing.T) {
	pte := InitPTE(false, 7, true, false, 0, 0)
	if pte != 0 || pte.Location().Kind != Unmapped {
		t.Errorf("Expected empty unmapped entry, got %s", pte)
	}
}

func TestDecodeAddress(t *testing.T) {
	pgn, offset := DecodeAddress(0x1234)
	if pgn != 0x12 || offset != 0x34 {
		t.Errorf("Expected (0x12, 0x34), got (%#x, %#x)", pgn, offset)
	}
}

func TestPhysicalAddress(t *testing.T) {
	if addr := PhysicalAddress(2, 10, Up); addr != 522 {
		t.Errorf("Expected 522, got %d", addr)
	}
	if addr := PhysicalAddress(2, 10, Down); addr != 757 {
		t.Errorf("Expected 757, got %d", addr)
	}
}

func TestDirectionArithmetic(t *testing.T) {
	if Up.Advance(100, 20) != 120 || Down.Advance(100, 20) != 80 {
		t.Errorf("Advance does not follow the direction")
	}
	if Up.Span(100, 120) != 20 || Down.Span(100, 80) != 20 {
		t.Errorf("Span does not follow the direction")
	}
	if Up.ByteAddr(100, 0) != 100 || Down.ByteAddr(100, 0) != 99 {
		t.Errorf("ByteAddr does not follow the direction")
	}
	if Up.AlignOut(300) != 512 || Down.AlignOut(300) != 256 || Up.AlignOut(512) != 512 {
		t.Errorf("AlignOut does not round away from the start")
	}
	lo, hi := Extent(2048, 1024)
	if lo != 1024 || hi != 2048 {
		t.Errorf("Expected [1024, 2048), got [%d, %d)", lo, hi)
	}
}

func TestStatusFromError(t *testing.T) {
	if StatusFromError(nil) != StatusOK {
		t.Errorf("Expected StatusOK for nil")
	}
	if StatusFromError(ErrOutOfSwap) != StatusOutOfSwap {
		t.Errorf("Expected StatusOutOfSwap")
	}
	if StatusFromError(ErrOverlap) != StatusFailure {
		t.Errorf("Expected StatusFailure for overlap")
	}
}

func TestConfigValidate(t *testing.T) {
	config := Config{RamSize: 512, SwapSizes: []int{256}, VMemSize: 2048, Replacement: ReplacementLRU}
	if err := config.Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	config.RamSize = 300
	if err := config.Validate(); err == nil {
		t.Errorf("Expected error for ram_size not multiple of page size")
	}

	config.RamSize = 512
	config.SwapSizes = []int{256, 256, 256, 256, 256}
	if err := config.Validate(); err == nil {
		t.Errorf("Expected error for more than %d swap devices", MaxSwapDevices)
	}

	config.SwapSizes = []int{256}
	config.Replacement = "CLOCK"
	if err := config.Validate(); err == nil {
		t.Errorf("Expected error for unknown replacement")
	}
}
