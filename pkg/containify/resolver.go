package containify

import (
	"fmt"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

// Resolve determines which backend owns the given container name. Local is
// probed first, then docker. The record's backend field is checked rather
// than trusting file presence alone, so a record that exists on disk but
// carries a mismatched backend value resolves to neither backend.
func (c *Containify) Resolve(name string) (types.Backend, bool) {
	rec, err := c.ReadRecord(name)
	if err == nil && rec.Backend == types.BackendLocal {
		return types.BackendLocal, true
	}

	rec, err = c.ReadRecord(name)
	if err == nil && rec.Backend == types.BackendDocker {
		return types.BackendDocker, true
	}

	return "", false
}

func fmtNotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}
