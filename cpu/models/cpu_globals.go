package models

type Config struct {
	PortCpu     int    `json:"port_cpu"`
	IpMemory    string `json:"ip_memory"`
	PortMemory  int    `json:"port_memory"`
	ScriptsPath string `json:"scripts_path"`
	VMemSize    int    `json:"vmem_size"`
	LogLevel    string `json:"log_level"`
}

var CpuConfig *Config

// Opcode es la operación de una instrucción de los scripts.
type Opcode string

const (
	CALC   Opcode = "CALC"
	ALLOC  Opcode = "ALLOC"
	MALLOC Opcode = "MALLOC"
	FREE   Opcode = "FREE"
	READ   Opcode = "READ"
	WRITE  Opcode = "WRITE"
)

// cantidad de argumentos de cada operación
var OpcodeArgs = map[Opcode]int{
	CALC:   0,
	ALLOC:  2, // size reg
	MALLOC: 2, // size reg
	FREE:   1, // reg
	READ:   3, // src_reg offset dst_reg
	WRITE:  3, // data dst_reg offset
}

type Instruction struct {
	Opcode Opcode
	Args   [3]int
}

const RegisterCount = 10

// PCB es lo que la CPU necesita de un proceso para ejecutarlo.
type PCB struct {
	PID       int
	PC        int
	Code      []Instruction
	Registers [RegisterCount]uint32
}

type ExecuteRequest struct {
	PID    int    `json:"pid"`
	Script string `json:"script"`
}

type ExecuteResponse struct {
	PID       int                   `json:"pid"`
	PC        int                   `json:"pc"`
	Registers [RegisterCount]uint32 `json:"registers"`
	Status    int                   `json:"status"`
}
