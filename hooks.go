package blockscript

import (
	"context"

	"github.com/aretw0/blockscript/pkg/block"
)

// CompileEvent describes one Compile call.
type CompileEvent struct {
	Stats block.Stats
	Err   error
}

// StoreEvent describes one Save, Load or Delete call.
type StoreEvent struct {
	ID    string
	Stats block.Stats
	Err   error
}

// Hooks are called after the matching workspace operation, whether it
// succeeded or not. Any field may be nil.
type Hooks struct {
	OnCompile func(context.Context, *CompileEvent)
	OnSave    func(context.Context, *StoreEvent)
	OnLoad    func(context.Context, *StoreEvent)
	OnDelete  func(context.Context, *StoreEvent)
}

func (h Hooks) compile(ctx context.Context, ev *CompileEvent) {
	if h.OnCompile != nil {
		h.OnCompile(ctx, ev)
	}
}

func (h Hooks) save(ctx context.Context, ev *StoreEvent) {
	if h.OnSave != nil {
		h.OnSave(ctx, ev)
	}
}

func (h Hooks) load(ctx context.Context, ev *StoreEvent) {
	if h.OnLoad != nil {
		h.OnLoad(ctx, ev)
	}
}

func (h Hooks) delete(ctx context.Context, ev *StoreEvent) {
	if h.OnDelete != nil {
		h.OnDelete(ctx, ev)
	}
}
