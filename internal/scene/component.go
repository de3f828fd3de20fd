package scene

import (
	"image"

	"starship/internal/asset"
)

// Loader is the subset of asset.Loader that components request assets from
type Loader interface {
	Image(path string) *asset.Handle[*image.RGBA]
	Model(path string) *asset.Handle[*asset.Model]
}

// Component adds and removes its objects from a scene
type Component interface {
	Mount(s *Scene) error
	Unmount(s *Scene)
}

// Status reports the asset state of a component, with the error when it failed
type Status struct {
	State asset.State
	Err   error
}

func (st Status) String() string {
	if st.State == asset.StateFailed && st.Err != nil {
		return st.State.String() + ": " + st.Err.Error()
	}
	return st.State.String()
}

// Suspendable is a component that can only mount once its assets are ready
type Suspendable interface {
	Component
	Status() Status
}

// combineStatus folds several handle states into one.
// Any failure wins, then any pending load, otherwise ready.
func combineStatus(states ...Status) Status {
	out := Status{State: asset.StateReady}
	for _, st := range states {
		switch st.State {
		case asset.StateFailed:
			return st
		case asset.StateUnrequested, asset.StateLoading:
			out = Status{State: asset.StateLoading}
		}
	}
	return out
}

func handleStatus[T any](h *asset.Handle[T]) Status {
	if h == nil {
		return Status{State: asset.StateUnrequested}
	}
	return Status{State: h.State(), Err: h.Err()}
}

// SuspenseState is the observable state of a suspense boundary
type SuspenseState int

const (
	SuspensePending SuspenseState = iota
	SuspenseMounted
	SuspenseFailed
)

func (s SuspenseState) String() string {
	switch s {
	case SuspenseMounted:
		return "mounted"
	case SuspenseFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Suspense defers mounting its child until the child's assets resolve.
// While pending it shows Fallback, or nothing when Fallback is nil.
// A failed load or mount is terminal and kept distinct from pending.
type Suspense struct {
	Child    Suspendable
	Fallback Component

	state         SuspenseState
	err           error
	fallbackShown bool
}

// NewSuspense wraps child with an empty placeholder
func NewSuspense(child Suspendable) *Suspense {
	return &Suspense{Child: child}
}

// Mount shows the fallback and tries to resolve the child straight away
func (b *Suspense) Mount(s *Scene) error {
	b.Update(s)
	return nil
}

// Update checks the child's assets and mounts it when they are all ready
func (b *Suspense) Update(s *Scene) {
	if b.state != SuspensePending {
		return
	}

	st := b.Child.Status()
	switch st.State {
	case asset.StateReady:
		b.hideFallback(s)
		if err := b.Child.Mount(s); err != nil {
			b.state = SuspenseFailed
			b.err = err
			return
		}
		b.state = SuspenseMounted
	case asset.StateFailed:
		b.hideFallback(s)
		b.state = SuspenseFailed
		b.err = st.Err
	default:
		b.showFallback(s)
	}
}

// Unmount removes whichever of child or fallback is showing
func (b *Suspense) Unmount(s *Scene) {
	b.hideFallback(s)
	if b.state == SuspenseMounted {
		b.Child.Unmount(s)
		b.state = SuspensePending
	}
}

// State returns pending, mounted or failed
func (b *Suspense) State() SuspenseState { return b.state }

// Err returns why the boundary failed
func (b *Suspense) Err() error { return b.err }

func (b *Suspense) showFallback(s *Scene) {
	if b.Fallback == nil || b.fallbackShown {
		return
	}
	if err := b.Fallback.Mount(s); err == nil {
		b.fallbackShown = true
	}
}

func (b *Suspense) hideFallback(s *Scene) {
	if b.Fallback == nil || !b.fallbackShown {
		return
	}
	b.Fallback.Unmount(s)
	b.fallbackShown = false
}
