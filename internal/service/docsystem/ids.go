package docsystem

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	models "kbportal/internal/domain/models/docsystem"
)

// IDGenerator allocates node ids of the form <kind>-<unix millis>-<index>-<8 hex>.
// The index keeps ids apart inside one same-millisecond batch; the random
// suffix keeps them apart across batches.
type IDGenerator struct {
	now func() time.Time
}

// NewIDGenerator creates a generator on the wall clock
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// New returns a fresh id for a node of the given kind
func (g *IDGenerator) New(kind models.NodeKind, index int) string {
	return fmt.Sprintf("%s-%d-%d-%s", kind, g.now().UnixMilli(), index, uuid.NewString()[:8])
}

// Today returns the generator's current date as YYYY-MM-DD (UTC)
func (g *IDGenerator) Today() string {
	return ModifiedDate(g.now())
}
