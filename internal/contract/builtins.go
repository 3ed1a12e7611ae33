package contract

import "sort"

// Builtin describes a built-in contract whose ABI and creation bytecode are
// embedded in the binary. New built-ins register themselves via init() in
// their own file — create internal/contract/<name>_abi.go and call
// RegisterBuiltin().
type Builtin struct {
	ID          string     // machine key, e.g. "swaptoken"
	Name        string     // human label
	Description string     // one-line summary
	ABI         []ABIEntry // full ABI, ready to use
	Bytecode    string     // 0x-prefixed creation bytecode, no constructor args
}

var builtinRegistry = map[string]Builtin{}

// RegisterBuiltin adds a built-in to the global registry.
// Call this from init() in the file that defines the ABI.
func RegisterBuiltin(b Builtin) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (Builtin, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []Builtin {
	out := make([]Builtin, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
