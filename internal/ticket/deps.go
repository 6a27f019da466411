package ticket

// DepsSatisfied reports whether every dependency of the ticket resolves to
// a known ticket whose status is done. The second return value lists the
// unmet dependency ids, in depends_on order. An empty depends_on is
// trivially satisfied. The function is pure over the provided snapshot: it
// performs no I/O and can be called repeatedly within one invocation.
func DepsSatisfied(m Meta, index map[string]Meta) (bool, []string) {
	var unmet []string
	for _, dep := range m.DependsOn {
		d, ok := index[dep]
		if !ok || d.Status != StatusDone {
			unmet = append(unmet, dep)
		}
	}
	return len(unmet) == 0, unmet
}
