package loadbalancer

import "sync"

// Rotation hands out proxy targets round-robin. The gateway uses it to
// spread export traffic across configured replicas.
type Rotation struct {
	targets []string
	mu      sync.Mutex
	current int
}

func New(targets []string) *Rotation {
	return &Rotation{targets: targets}
}

// Next returns the next target, or "" when none are configured.
func (r *Rotation) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.targets) == 0 {
		return ""
	}
	target := r.targets[r.current]
	r.current = (r.current + 1) % len(r.targets)
	return target
}

func (r *Rotation) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.targets)
}
