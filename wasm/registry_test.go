package wasm

import (
	"encoding/base64"
	"testing"

	"github.com/bytecodealliance/wasmtime-go/v25"
	"github.com/stretchr/testify/require"
)

const gcdWat = `(module
  (func $gcd (param i32 i32) (result i32)
    (local i32)
    block
      block
        local.get 0
        br_if 0
        local.get 1
        local.set 2
        br 1
      end
      loop
        local.get 1
        local.get 0
        local.tee 2
        i32.rem_u
        local.set 0
        local.get 2
        local.set 1
        local.get 0
        br_if 0
      end
    end
    local.get 2
  )
  (export "main" (func $gcd))
)`

const largerThanWat = `(module
  (func $larger_than (param f64 f64) (result i32)
    local.get 0
    local.get 1
    f64.gt
  )
  (export "larger_than" (func $larger_than))
)`

func encode(wat string) string {
	return base64.StdEncoding.EncodeToString([]byte(wat))
}

func TestRegistry_RegisterAndRun(t *testing.T) {
	r := NewRegistry()

	ok := r.Register(ModuleTypeWAT, "gcd", "main", encode(gcdWat))
	require.True(t, ok)
	require.True(t, r.Contains("gcd"))

	out, err := r.Run("gcd", []int32{27, 18})
	require.NoError(t, err)
	require.Equal(t, []int32{9}, out)
}

func TestRegistry_RunElemFunc(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Register(ModuleTypeWAT, "larger_than", "larger_than", encode(largerThanWat)))

	got, err := r.RunElemFunc("larger_than", []wasmtime.Val{wasmtime.ValF64(0.7), wasmtime.ValF64(0.5)})
	require.NoError(t, err)
	require.True(t, got)

	got, err = r.RunElemFunc("larger_than", []wasmtime.Val{wasmtime.ValF64(0.5), wasmtime.ValF64(0.5)})
	require.NoError(t, err)
	require.False(t, got)
}

func TestRegistry_RegisterFailures(t *testing.T) {
	r := NewRegistry()

	// invalid base64
	require.False(t, r.Register(ModuleTypeWAT, "bad", "main", "%%%"))

	// invalid wat
	require.False(t, r.Register(ModuleTypeWAT, "bad", "main", encode("(module (fun")))

	// missing export
	require.False(t, r.Register(ModuleTypeWAT, "bad", "missing", encode(gcdWat)))

	// binary payloads are reserved
	require.False(t, r.Register(ModuleTypeWASM, "bad", "main", encode(gcdWat)))

	require.False(t, r.Contains("bad"))
}

func TestRegistry_Delete(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Register(ModuleTypeWAT, "gcd", "main", encode(gcdWat)))

	require.True(t, r.Delete("gcd"))
	require.False(t, r.Contains("gcd"))
	require.True(t, r.Delete("never-registered"))

	_, err := r.Run("gcd", []int32{27, 18})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_RegisterTwice(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Register(ModuleTypeWAT, "gcd", "main", encode(gcdWat)))
	require.True(t, r.Register(ModuleTypeWAT, "gcd", "main", encode(gcdWat)))

	out, err := r.Run("gcd", []int32{12, 8})
	require.NoError(t, err)
	require.Equal(t, []int32{4}, out)
}

func TestDefault_Singleton(t *testing.T) {
	require.Same(t, Default(), Default())
}
