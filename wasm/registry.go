package wasm

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bytecodealliance/wasmtime-go/v25"
	"golang.org/x/sync/singleflight"
)

const (
	// ModuleTypeWAT marks a base64-encoded textual WebAssembly payload.
	ModuleTypeWAT = "WAT"

	// ModuleTypeWASM marks a base64-encoded binary payload. Reserved.
	ModuleTypeWASM = "WASM"
)

var (
	// ErrNotFound is returned when running a function that was never
	// registered.
	ErrNotFound = errors.New("wasm: function not registered")

	// ErrNoResult is returned when a function produced no results.
	ErrNoResult = errors.New("wasm: function returned no result")
)

// function is an immutable compiled instance. The store is single-threaded
// by wasmtime contract, so calls serialize on the mutex. A function handed
// out to a caller stays valid even if Delete removes it from the registry
// mid-call.
type function struct {
	mu    sync.Mutex
	store *wasmtime.Store
	fn    *wasmtime.Func
}

// Registry maps function names to compiled WebAssembly instances. Entries
// are immutable once registered; Register and Delete may race with Run of
// other functions.
type Registry struct {
	engine    *wasmtime.Engine
	mu        sync.RWMutex
	functions map[string]*function
	group     singleflight.Group
	logger    *slog.Logger
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates an empty registry with its own wasmtime engine.
func NewRegistry() *Registry {
	return &Registry{
		engine:    wasmtime.NewEngine(),
		functions: make(map[string]*function),
		logger:    slog.Default(),
	}
}

// SetLogger replaces the registry's logger.
func (r *Registry) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Register compiles and instantiates a module and binds the exported
// handler under funcName. WAT payloads are base64-encoded text; binary
// WASM payloads are reserved and rejected. Compilation failures return
// false. Registering an already-registered name is a no-op returning true.
func (r *Registry) Register(moduleType, funcName, handlerName, payload string) bool {
	if moduleType != ModuleTypeWAT {
		return false
	}

	_, err, _ := r.group.Do(funcName, func() (any, error) {
		r.mu.RLock()
		_, exists := r.functions[funcName]
		r.mu.RUnlock()
		if exists {
			return nil, nil
		}

		f, err := r.compile(handlerName, payload)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.functions[funcName] = f
		r.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		r.logger.Warn("wasm function registration failed",
			"func", funcName,
			"handler", handlerName,
			"error", err,
		)
		return false
	}

	r.logger.Debug("wasm function registered", "func", funcName)
	return true
}

func (r *Registry) compile(handlerName, payload string) (*function, error) {
	wat, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	wasmBytes, err := wasmtime.Wat2Wasm(string(wat))
	if err != nil {
		return nil, fmt.Errorf("translate wat: %w", err)
	}
	module, err := wasmtime.NewModule(r.engine, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("compile module: %w", err)
	}

	store := wasmtime.NewStore(r.engine)
	// No imports: UDFs are pure from the host's perspective.
	instance, err := wasmtime.NewInstance(store, module, []wasmtime.AsExtern{})
	if err != nil {
		return nil, fmt.Errorf("instantiate module: %w", err)
	}
	fn := instance.GetFunc(store, handlerName)
	if fn == nil {
		return nil, fmt.Errorf("export %q not found", handlerName)
	}

	return &function{store: store, fn: fn}, nil
}

// Contains reports whether funcName is registered.
func (r *Registry) Contains(funcName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.functions[funcName]
	return ok
}

// Delete removes a function. Deleting an unknown name is not an error.
func (r *Registry) Delete(funcName string) bool {
	r.mu.Lock()
	delete(r.functions, funcName)
	r.mu.Unlock()

	r.logger.Debug("wasm function deleted", "func", funcName)
	return true
}

func (r *Registry) lookup(funcName string) (*function, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.functions[funcName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, funcName)
	}
	return f, nil
}

// Run calls the function with i32 arguments and returns all results as
// i32.
func (r *Registry) Run(funcName string, args []int32) ([]int32, error) {
	f, err := r.lookup(funcName)
	if err != nil {
		return nil, err
	}

	raw := make([]any, len(args))
	for i, a := range args {
		raw[i] = a
	}

	f.mu.Lock()
	result, err := f.fn.Call(f.store, raw...)
	f.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("wasm: call %q: %w", funcName, err)
	}

	switch res := result.(type) {
	case nil:
		return nil, nil
	case int32:
		return []int32{res}, nil
	case []wasmtime.Val:
		out := make([]int32, len(res))
		for i, v := range res {
			out[i] = v.I32()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("wasm: call %q: unexpected result %T", funcName, result)
	}
}

// RunElemFunc calls the function with pre-typed values and interprets the
// first result's i32 as a boolean.
func (r *Registry) RunElemFunc(funcName string, args []wasmtime.Val) (bool, error) {
	f, err := r.lookup(funcName)
	if err != nil {
		return false, err
	}

	raw := make([]any, len(args))
	for i, a := range args {
		raw[i] = a.Get()
	}

	f.mu.Lock()
	result, err := f.fn.Call(f.store, raw...)
	f.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("wasm: call %q: %w", funcName, err)
	}

	switch res := result.(type) {
	case int32:
		return res != 0, nil
	case []wasmtime.Val:
		if len(res) == 0 {
			return false, fmt.Errorf("%w: %q", ErrNoResult, funcName)
		}
		return res[0].I32() != 0, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrNoResult, funcName)
	}
}
