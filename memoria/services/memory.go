package services

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

// Memory es una instancia del administrador de memoria: la RAM compartida, la política de
// reemplazo y los procesos registrados.
type Memory struct {
	config *models.Config
	ram    *PhysicalMemory
	policy ReplacementPolicy

	// serializa fallos de página, swap, crecimiento de áreas y accesos a bytes
	faultMu sync.Mutex

	processesMu sync.RWMutex
	processes   map[int]*Process
}

func NewMemory(config *models.Config) (*Memory, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ram, err := NewPhysicalMemory(config.RamSize, config.RamSequential)
	if err != nil {
		return nil, err
	}

	slog.Debug("Memoria inicializada",
		slog.Int("frames", ram.FrameCount()),
		slog.String("reemplazo", config.Replacement),
		slog.Bool("heap_grows_up", config.HeapGrowsUp),
	)

	return &Memory{
		config:    config,
		ram:       ram,
		policy:    NewReplacementPolicy(config.Replacement, ram.FrameCount()),
		processes: make(map[int]*Process),
	}, nil
}

func (m *Memory) RAM() *PhysicalMemory      { return m.ram }
func (m *Memory) Policy() ReplacementPolicy { return m.policy }
func (m *Memory) Config() *models.Config    { return m.config }

// CreateProcess registra un proceso nuevo. vmemsz en 0 toma el vmem_size del config.
func (m *Memory) CreateProcess(pid int, vmemsz int) (*Process, error) {
	if vmemsz == 0 {
		vmemsz = m.config.VMemSize
	}
	if err := models.ValidateVMemSize(vmemsz); err != nil {
		return nil, err
	}

	swap, err := NewSwapManager(m.config.SwapSizes, m.config.SwapSequential)
	if err != nil {
		return nil, err
	}

	m.processesMu.Lock()
	defer m.processesMu.Unlock()

	if _, exists := m.processes[pid]; exists {
		return nil, fmt.Errorf("%w: PID %d", models.ErrProcessExists, pid)
	}
	proc := newProcess(pid, vmemsz, m.config.HeapGrowsUp, swap)
	m.processes[pid] = proc

	slog.Info(fmt.Sprintf("## PID: %d - Proceso Creado - Tamaño virtual: %d", pid, vmemsz))
	return proc, nil
}

func (m *Memory) GetProcess(pid int) (*Process, error) {
	m.processesMu.RLock()
	defer m.processesMu.RUnlock()

	proc, exists := m.processes[pid]
	if !exists {
		return nil, fmt.Errorf("%w: PID %d", models.ErrProcessNotFound, pid)
	}
	return proc, nil
}

// ReleaseProcess libera todos los frames de RAM y de swap del proceso y lo saca del registro.
func (m *Memory) ReleaseProcess(pid int) error {
	m.processesMu.Lock()
	proc, exists := m.processes[pid]
	if !exists {
		m.processesMu.Unlock()
		return fmt.Errorf("%w: PID %d", models.ErrProcessNotFound, pid)
	}
	delete(m.processes, pid)
	m.processesMu.Unlock()

	m.faultMu.Lock()
	defer m.faultMu.Unlock()

	resident, swapped := 0, 0
	for pgn, pte := range proc.pageTable {
		loc := pte.Location()
		switch loc.Kind {
		case models.Resident:
			m.ram.PutFreeFrame(loc.Frame)
			resident++
		case models.Swapped:
			if err := proc.swap.Release(loc.Device, loc.Offset); err != nil {
				slog.Warn("No se pudo liberar el frame de swap", "pid", pid, "pgn", pgn, "error", err)
				continue
			}
			swapped++
		}
		proc.pageTable[pgn] = 0
	}
	m.policy.Forget(proc)

	slog.Info(fmt.Sprintf("## PID: %d - Proceso Destruido - Frames liberados: %d - Swap liberado: %d", pid, resident, swapped))
	return nil
}

// PIDs devuelve los procesos registrados.
func (m *Memory) PIDs() []int {
	m.processesMu.RLock()
	defer m.processesMu.RUnlock()

	pids := make([]int, 0, len(m.processes))
	for pid := range m.processes {
		pids = append(pids, pid)
	}
	return pids
}
