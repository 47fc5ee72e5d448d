package loom

import "sync"

// The process-wide container is explicit state: it must be activated with
// InitGlobal before first use and torn down with ResetGlobal for test
// isolation. Accessing it without initialization panics; there is no
// implicit initialize-on-first-access.

var (
	globalMu sync.Mutex
	global   *MutableContainer
)

func InitGlobal(mutable bool, opts ...Option) (*MutableContainer, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil, errAlreadyInitialized("global container")
	}
	global = NewMutable(mutable, opts...)
	return global, nil
}

func MustInitGlobal(mutable bool, opts ...Option) *MutableContainer {
	mc, err := InitGlobal(mutable, opts...)
	if err != nil {
		panic(err)
	}
	return mc
}

func Global() *MutableContainer {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		panic("loom: global container not initialized, call InitGlobal first")
	}
	return global
}

func ResetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()

	global = nil
}
