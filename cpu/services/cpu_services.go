package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/cpu/models"
	memoriaModel "github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/memoria/models"
)

// Execute corre una instrucción y devuelve el código de memoria (0, 1 o -3000).
// El error solo indica que no se pudo hablar con memoria.
func Execute(pcb *models.PCB, instruction models.Instruction, memory MemoryClient) (int, error) {
	args := instruction.Args
	slog.Info(fmt.Sprintf("## PID: %d - Ejecutando: %s - %v", pcb.PID, instruction.Opcode, args))

	var response memoriaModel.SyscallResponse
	var err error

	switch instruction.Opcode {
	case models.CALC:
		return memoriaModel.StatusOK, nil

	case models.ALLOC, models.MALLOC:
		if !validRegister(args[1]) {
			return memoriaModel.StatusFailure, nil
		}
		if instruction.Opcode == models.ALLOC {
			response, err = memory.Alloc(pcb.PID, args[0], args[1])
		} else {
			response, err = memory.Malloc(pcb.PID, args[0], args[1])
		}
		if err == nil && response.Status == memoriaModel.StatusOK {
			pcb.Registers[args[1]] = uint32(response.Address)
		}

	case models.FREE:
		response, err = memory.Free(pcb.PID, args[0])

	case models.READ:
		if !validRegister(args[2]) {
			return memoriaModel.StatusFailure, nil
		}
		response, err = memory.Read(pcb.PID, args[0], args[1])
		if err == nil && response.Status == memoriaModel.StatusOK {
			pcb.Registers[args[2]] = uint32(response.Value)
		}

	case models.WRITE:
		response, err = memory.Write(pcb.PID, uint8(args[0]), args[1], args[2])

	default:
		return memoriaModel.StatusFailure, fmt.Errorf("instrucción desconocida %q", instruction.Opcode)
	}

	if err != nil {
		return memoriaModel.StatusFailure, err
	}
	if response.Status != memoriaModel.StatusOK {
		slog.Warn(fmt.Sprintf("## PID: %d - %s falló - Código: %d", pcb.PID, instruction.Opcode, response.Status), "error", response.Error)
	}
	return response.Status, nil
}

func validRegister(reg int) bool {
	return reg >= 0 && reg < models.RegisterCount
}

// Run ejecuta el proceso hasta terminar el código. Un fallo común deja seguir al proceso,
// quedarse sin swap o perder la conexión con memoria lo corta.
func Run(pcb *models.PCB, memory MemoryClient) (int, error) {
	for pcb.PC < len(pcb.Code) {
		status, err := Execute(pcb, pcb.Code[pcb.PC], memory)
		if err != nil {
			slog.Error(fmt.Sprintf("## PID: %d - Error de comunicación con memoria: %v", pcb.PID, err))
			return status, err
		}
		pcb.PC++

		if status == memoriaModel.StatusOutOfSwap {
			slog.Error(fmt.Sprintf("## PID: %d - Finaliza por falta de swap - PC: %d", pcb.PID, pcb.PC))
			return status, nil
		}
	}

	slog.Info(fmt.Sprintf("## PID: %d - Finaliza - PC: %d", pcb.PID, pcb.PC))
	return memoriaModel.StatusOK, nil
}

// RunScript carga el script, crea el proceso en memoria, lo ejecuta y libera su memoria al terminar.
func RunScript(pid int, path string, vmemsz int, memory MemoryClient) (*models.PCB, int, error) {
	code, err := LoadScript(path)
	if err != nil {
		return nil, memoriaModel.StatusFailure, err
	}

	if err := memory.CreateProcess(pid, vmemsz); err != nil {
		return nil, memoriaModel.StatusFailure, err
	}
	defer func() {
		if err := memory.EndProcess(pid); err != nil {
			slog.Error(fmt.Sprintf("## PID: %d - No se pudo liberar la memoria: %v", pid, err))
		}
	}()

	pcb := &models.PCB{PID: pid, Code: code}
	status, err := Run(pcb, memory)
	return pcb, status, err
}
