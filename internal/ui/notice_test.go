package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeShowAndExpire(t *testing.T) {
	n := newNotice(noticeError, time.Millisecond)

	cmd := n.Show("boom")
	require.NotNil(t, cmd)
	assert.True(t, n.Active())
	assert.Equal(t, "boom", n.Text())

	assert.True(t, n.Expire(noticeExpiredMsg{kind: noticeError, id: 1}))
	assert.False(t, n.Active())
}

func TestNoticeStaleExpiryIgnored(t *testing.T) {
	n := newNotice(noticeCelebration, time.Millisecond)

	n.Show("first")
	n.Show("second")

	// The timer armed by the first Show lapses after the second Show;
	// its message must not take down the newer banner.
	assert.False(t, n.Expire(noticeExpiredMsg{kind: noticeCelebration, id: 1}))
	assert.True(t, n.Active())
	assert.Equal(t, "second", n.Text())

	assert.True(t, n.Expire(noticeExpiredMsg{kind: noticeCelebration, id: 2}))
	assert.False(t, n.Active())
}

func TestNoticeIgnoresOtherKinds(t *testing.T) {
	n := newNotice(noticeSignInHint, time.Millisecond)
	n.Show("")

	assert.False(t, n.Expire(noticeExpiredMsg{kind: noticeError, id: 1}))
	assert.True(t, n.Active())
}

func TestNoticeSetThenClear(t *testing.T) {
	n := newNotice(noticeError, time.Millisecond)
	n.Set("sticky")

	assert.True(t, n.Active())
	assert.Equal(t, "sticky", n.Text())

	n.Clear()
	assert.False(t, n.Active())
}
