package launcher

import (
	"github.com/LasseHaedge/procspawn/pkg/lib"
)

// Status returns a point-in-time snapshot for the identified child.
func (l *Launcher) Status(id string) (*lib.Status, error) {
	e, err := l.getEntry(id)
	if err != nil {
		return nil, err
	}
	st := e.lockAndGetStatus()
	return &st, nil
}
