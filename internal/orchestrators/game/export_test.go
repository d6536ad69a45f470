package game

// SessionLockCount reports how many per-session mutexes the service holds
func SessionLockCount(svc Service) int {
	o, ok := svc.(*orchestrator)
	if !ok {
		return -1
	}

	n := 0
	o.locks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
