package eval

import (
	"errors"
	"fmt"

	"github.com/bytecodealliance/wasmtime-go/v25"

	"github.com/hupe1980/scalargo/bitset"
	"github.com/hupe1980/scalargo/expr"
	"github.com/hupe1980/scalargo/types"
	"github.com/hupe1980/scalargo/wasm"
)

// VisitUdf implements expr.Visitor. The function is invoked once per row
// with arguments marshalled to their WASM-native types; the single i32
// result is interpreted as the row's bit. The argument buffer is reused
// across rows.
func (e *Evaluator) VisitUdf(x *expr.Udf) (*bitset.BitSet, error) {
	for _, a := range x.Args {
		if a.Type == types.String {
			return nil, fmt.Errorf("%w: String udf argument", ErrUnsupportedType)
		}
		if a.IsField {
			if _, err := e.fieldMeta(a.Field, a.Type); err != nil {
				return nil, err
			}
			if err := e.checkBarriers(a.Field, e.barriers(a.Field)); err != nil {
				return nil, err
			}
		} else if a.Literal.Kind() != a.Type {
			return nil, valueKindMismatch(a.Literal, a.Type)
		}
	}

	if !e.registry.Contains(x.FuncName) {
		if x.WasmBody == "" {
			return nil, fmt.Errorf("%w: %q", ErrUDFNotFound, x.FuncName)
		}
		if !e.registry.Register(wasm.ModuleTypeWAT, x.FuncName, x.FuncName, x.WasmBody) {
			return nil, fmt.Errorf("%w: %q", ErrUDFCompile, x.FuncName)
		}
	}

	chunks := make([]*bitset.BitSet, 0, e.numChunks)
	params := make([]wasmtime.Val, 0, len(x.Args))

	for chunkID := int64(0); chunkID < e.numChunks; chunkID++ {
		accessors := make([]func(int64) (types.Value, error), len(x.Args))
		for ai, a := range x.Args {
			if !a.IsField {
				continue
			}
			f, _ := e.seg.Schema().FieldByID(a.Field)
			at, err := e.valueAccessor(f, chunkID)
			if err != nil {
				return nil, err
			}
			accessors[ai] = at
		}

		size := e.chunkSize(chunkID)
		bs := bitset.New(size)
		for i := int64(0); i < size; i++ {
			params = params[:0]
			for ai, a := range x.Args {
				v := a.Literal
				if a.IsField {
					var err error
					v, err = accessors[ai](i)
					if err != nil {
						return nil, err
					}
				}
				val, err := marshalWasmVal(a.Type, v)
				if err != nil {
					return nil, err
				}
				params = append(params, val)
			}

			ok, err := e.registry.RunElemFunc(x.FuncName, params)
			if err != nil {
				if errors.Is(err, wasm.ErrNotFound) {
					return nil, fmt.Errorf("%w: %q", ErrUDFNotFound, x.FuncName)
				}
				return nil, fmt.Errorf("eval: udf %q: %w", x.FuncName, err)
			}
			bs.SetTo(i, ok)
		}
		chunks = append(chunks, bs)
	}

	return assemble(e, chunks)
}

// marshalWasmVal converts a typed value into the WASM-native
// representation declared for the argument.
func marshalWasmVal(t types.ElementType, v types.Value) (wasmtime.Val, error) {
	switch t {
	case types.Bool:
		if v.Bool() {
			return wasmtime.ValI32(1), nil
		}
		return wasmtime.ValI32(0), nil
	case types.Int8, types.Int16, types.Int32:
		return wasmtime.ValI32(int32(v.Int64())), nil
	case types.Int64:
		return wasmtime.ValI64(v.Int64()), nil
	case types.Float32:
		return wasmtime.ValF32(float32(v.Float64())), nil
	case types.Float64:
		return wasmtime.ValF64(v.Float64()), nil
	default:
		return wasmtime.Val{}, fmt.Errorf("%w: %s udf argument", ErrUnsupportedType, t)
	}
}
