package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeAuth bool

func (f fakeAuth) Valid() bool { return bool(f) }

func TestStartRoute(t *testing.T) {
	assert.Equal(t, Auth(), StartRoute(fakeAuth(false)))
	assert.Equal(t, Main(TabHome), StartRoute(fakeAuth(true)))
	assert.Equal(t, Auth(), StartRoute(nil))
}

func TestDetailsBackReturnsToPreviousTab(t *testing.T) {
	n := New(Main(TabHome))
	n.SelectTab(TabCart)
	n.Navigate(ProductDetails(7))

	assert.Equal(t, "products/7", n.Current().String())
	assert.True(t, n.Back())
	assert.Equal(t, Main(TabCart), n.Current())
	assert.False(t, n.Back())
}

func TestRootsClearStack(t *testing.T) {
	n := New(Main(TabHome))
	n.Navigate(ProductDetails(1))
	n.Navigate(ProductDetails(2))
	assert.Equal(t, 2, n.Depth())

	n.Navigate(Auth())
	assert.Zero(t, n.Depth())
	assert.Equal(t, "auth", n.Current().String())
}

func TestSelectTabIgnoredOutsideMain(t *testing.T) {
	n := New(Auth())
	n.SelectTab(TabOrders)
	assert.Equal(t, Auth(), n.Current())
}
