package docsystem

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "kbportal/internal/domain/models/docsystem"
)

func TestNotificationFeed(t *testing.T) {
	feed := NewNotificationFeed(3, discardLogger())
	ctx := t.Context()

	for i := 1; i <= 5; i++ {
		feed.Notify(ctx, models.NotificationInfo, fmt.Sprintf("event %d", i))
	}

	all := feed.Since(0)
	require.Len(t, all, 3, "backlog keeps only the newest")
	assert.Equal(t, uint64(3), all[0].Seq)
	assert.Equal(t, "event 5", all[2].Message)
	assert.False(t, all[2].At.IsZero())

	newer := feed.Since(4)
	require.Len(t, newer, 1)
	assert.Equal(t, uint64(5), newer[0].Seq)

	assert.Empty(t, feed.Since(5))
	assert.NotNil(t, feed.Since(5))
}
