package vkboot

// Ledger records release functions in acquisition order and runs them in
// reverse. Each entry runs at most once.
type Ledger struct {
	guards []guard
}

type guard struct {
	name    string
	release func()
}

// Push records that name was acquired and how to release it.
func (l *Ledger) Push(name string, release func()) {
	l.guards = append(l.guards, guard{name: name, release: release})
}

// Len is the number of resources still held.
func (l *Ledger) Len() int {
	return len(l.guards)
}

// Names lists the held resources in acquisition order.
func (l *Ledger) Names() []string {
	names := make([]string, len(l.guards))
	for i, g := range l.guards {
		names[i] = g.name
	}
	return names
}

// Release runs every recorded release, most recent first, and empties the ledger.
func (l *Ledger) Release() {
	for len(l.guards) > 0 {
		last := len(l.guards) - 1
		g := l.guards[last]
		l.guards = l.guards[:last]
		logger.Debugf("releasing %s", g.name)
		g.release()
	}
}
