package hook

import (
	"log"
	"sync"

	"github.com/ayusman/sigil/internal/gesture"
)

// Dispatcher runs every hook that handles a match, each in its own goroutine.
type Dispatcher struct {
	manager  *Manager
	executor *Executor
	wg       sync.WaitGroup

	// OnResult, if set, receives each hook's outcome.
	OnResult func(h *Hook, resp *Response, err error)
}

// NewDispatcher creates a Dispatcher for the hooks known to manager.
func NewDispatcher(manager *Manager, executor *Executor) *Dispatcher {
	return &Dispatcher{manager: manager, executor: executor}
}

// Handle starts the hooks for m. It does not wait for them.
func (d *Dispatcher) Handle(m gesture.Match) {
	for _, h := range d.manager.Matching(m) {
		d.wg.Add(1)
		go func(h *Hook) {
			defer d.wg.Done()

			resp, err := d.executor.Execute(h, h.NewRequest(m))
			switch {
			case err != nil:
				log.Printf("Hook %s failed: %v", h.Manifest.Name, err)
			case !resp.Success:
				log.Printf("Hook %s reported an error: %s", h.Manifest.Name, resp.Error)
			default:
				log.Printf("Hook %s ran for %s", h.Manifest.Name, m.Template.Name)
			}
			if d.OnResult != nil {
				d.OnResult(h, resp, err)
			}
		}(h)
	}
}

// Wait blocks until every started hook has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
