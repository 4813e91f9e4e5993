package event

import (
	"context"
	"errors"
	"testing"

	"orders-hertz/biz/model"

	"github.com/stretchr/testify/assert"
)

type countingPublisher struct {
	published int
	closed    bool
	err       error
}

func (p *countingPublisher) PublishOrderCreated(context.Context, *model.OrderCreatedEvent) error {
	p.published++
	return p.err
}

func (p *countingPublisher) Close() error {
	p.closed = true
	return p.err
}

func TestMultiPublishesToEverySink(t *testing.T) {
	failing := &countingPublisher{err: errors.New("down")}
	ok := &countingPublisher{}
	m := Multi{failing, ok}

	err := m.PublishOrderCreated(context.Background(), NewOrderCreated(model.Order{ID: 1}))
	assert.ErrorIs(t, err, failing.err)
	assert.Equal(t, 1, failing.published)
	assert.Equal(t, 1, ok.published)

	assert.Error(t, m.Close())
	assert.True(t, failing.closed)
	assert.True(t, ok.closed)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishOrderCreated(context.Background(), nil))
	assert.NoError(t, p.Close())
}
