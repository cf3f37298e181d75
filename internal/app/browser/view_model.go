package browser

import (
	"context"
	"sync/atomic"

	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/logging"
)

// TabViewModel is the live side of a tab.
type TabViewModel struct {
	id       entity.TabID
	manager  *WindowManager
	prepared atomic.Bool
}

// TabID returns the tab identifier.
func (vm *TabViewModel) TabID() entity.TabID {
	return vm.id
}

// PrepareForBurning stops pending work of the tab before it is closed.
func (vm *TabViewModel) PrepareForBurning(ctx context.Context) error {
	if hook := vm.manager.PrepareHook; hook != nil {
		if err := hook(ctx, vm.id); err != nil {
			return err
		}
	}
	vm.prepared.Store(true)
	logging.FromContext(ctx).Debug().Str("tab_id", string(vm.id)).Msg("tab prepared for burning")
	return nil
}

// Prepared reports whether PrepareForBurning completed.
func (vm *TabViewModel) Prepared() bool {
	return vm.prepared.Load()
}
