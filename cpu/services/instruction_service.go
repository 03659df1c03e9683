package services

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sisoputnfrba/tp-2025-1c-Los-magiOS-mm/cpu/models"
)

// ParseInstruction convierte una línea del script ("alloc 300 0") en una instrucción.
func ParseInstruction(line string) (models.Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return models.Instruction{}, fmt.Errorf("instrucción vacía")
	}

	opcode := models.Opcode(strings.ToUpper(fields[0]))
	expected, exists := models.OpcodeArgs[opcode]
	if !exists {
		return models.Instruction{}, fmt.Errorf("instrucción desconocida %q", fields[0])
	}
	if len(fields)-1 != expected {
		return models.Instruction{}, fmt.Errorf("%s espera %d argumentos, tiene %d", opcode, expected, len(fields)-1)
	}

	instruction := models.Instruction{Opcode: opcode}
	for i, field := range fields[1:] {
		value, err := strconv.Atoi(field)
		if err != nil {
			return models.Instruction{}, fmt.Errorf("argumento %d de %s inválido: %q", i, opcode, field)
		}
		instruction.Args[i] = value
	}
	return instruction, nil
}

// LoadScript lee un script de instrucciones. Se ignoran las líneas vacías, los comentarios (#)
// y la cabecera numérica "<prioridad> <cantidad>".
func LoadScript(path string) ([]models.Instruction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var code []models.Instruction
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || isHeader(line) {
			continue
		}

		instruction, err := ParseInstruction(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNumber, err)
		}
		code = append(code, instruction)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return code, nil
}

func isHeader(line string) bool {
	for _, field := range strings.Fields(line) {
		if _, err := strconv.Atoi(field); err != nil {
			return false
		}
	}
	return true
}
