package application

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/mywallet/internal/domain/entity"
	"github.com/oksasatya/mywallet/internal/infrastructure/memory"
)

type recordedMovement struct {
	kind   string
	amount float64
}

type fakeRecorder struct {
	got []recordedMovement
}

func (r *fakeRecorder) RecordMovement(kind string, amount float64) {
	r.got = append(r.got, recordedMovement{kind, amount})
}

type recordedEvent struct {
	msgType string
	body    any
}

type fakePublisher struct {
	events []recordedEvent
	err    error
}

func (p *fakePublisher) PublishJSON(_ context.Context, msgType string, body any) error {
	p.events = append(p.events, recordedEvent{msgType: msgType, body: body})
	return p.err
}

var (
	maria = &entity.User{ID: "u-1", Name: "Maria", Email: "maria@example.com"}
	joao  = &entity.User{ID: "u-2", Name: "Joao", Email: "joao@example.com"}
)

func TestDepositAndWithdraw_SignConvention(t *testing.T) {
	store := memory.NewStore()
	svc := NewLedgerService(store.Movements(), nil, nil, nil)
	ctx := context.Background()
	desc := "salary"

	dep, err := svc.Deposit(ctx, maria, 100, &desc)
	require.NoError(t, err)
	assert.NotEmpty(t, dep.ID)
	assert.Equal(t, 100.0, *dep.Deposit)
	assert.Nil(t, dep.Withdraw)
	assert.Equal(t, "Maria", dep.Name)
	assert.Equal(t, "u-1", dep.UserID)

	wd, err := svc.Withdraw(ctx, maria, 40, nil)
	require.NoError(t, err)
	assert.Equal(t, -40.0, *wd.Withdraw)
	assert.Nil(t, wd.Deposit)
	assert.Nil(t, wd.Description)

	movs, err := svc.Statement(ctx, maria)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, dep.ID, movs[0].ID)
	assert.Equal(t, wd.ID, movs[1].ID)
	assert.Equal(t, 60.0, entity.Balance(movs))
}

func TestStatement_OnlyCallerMovements(t *testing.T) {
	store := memory.NewStore()
	svc := NewLedgerService(store.Movements(), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, maria, 10, nil)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, joao, 99, nil)
	require.NoError(t, err)

	movs, err := svc.Statement(ctx, joao)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "u-2", movs[0].UserID)

	again, err := svc.Statement(ctx, joao)
	require.NoError(t, err)
	assert.Equal(t, movs, again)
}

func TestStatement_Empty(t *testing.T) {
	svc := NewLedgerService(memory.NewStore().Movements(), nil, nil, nil)

	movs, err := svc.Statement(context.Background(), maria)
	require.NoError(t, err)
	assert.NotNil(t, movs)
	assert.Empty(t, movs)
}

func TestRecord_PublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewLedgerService(memory.NewStore().Movements(), pub, nil, nil)
	desc := "groceries"

	m, err := svc.Withdraw(context.Background(), maria, 25.5, &desc)
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, entity.MovementRecordedType, pub.events[0].msgType)
	evt, ok := pub.events[0].body.(entity.MovementRecorded)
	require.True(t, ok)
	assert.Equal(t, m.ID, evt.MovementID)
	assert.Equal(t, "withdraw", evt.Kind)
	assert.Equal(t, -25.5, evt.Amount)
	assert.Equal(t, "maria@example.com", evt.Email)
	assert.Equal(t, "groceries", evt.Description)
}

func TestRecord_PublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	store := memory.NewStore()
	svc := NewLedgerService(store.Movements(), pub, nil, nil)

	_, err := svc.Deposit(context.Background(), maria, 1, nil)
	require.NoError(t, err)

	movs, err := svc.Statement(context.Background(), maria)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestRecord_StoreFailure(t *testing.T) {
	pub := &fakePublisher{}
	store := memory.NewStore()
	store.Err = errors.New("db down")
	svc := NewLedgerService(store.Movements(), pub, nil, nil)

	_, err := svc.Deposit(context.Background(), maria, 1, nil)
	assert.Error(t, err)
	assert.Empty(t, pub.events)
}

func TestWithdraw_ZeroIsNotNegativeZero(t *testing.T) {
	svc := NewLedgerService(memory.NewStore().Movements(), nil, nil, nil)

	wd, err := svc.Withdraw(context.Background(), maria, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, wd.Withdraw)
	assert.Zero(t, *wd.Withdraw)
	assert.False(t, math.Signbit(*wd.Withdraw))

	dep, err := svc.Deposit(context.Background(), maria, math.Copysign(0, -1), nil)
	require.NoError(t, err)
	assert.False(t, math.Signbit(*dep.Deposit))
}

func TestRecord_ReportsMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	store := memory.NewStore()
	svc := NewLedgerService(store.Movements(), nil, rec, nil)

	_, err := svc.Deposit(context.Background(), maria, 10, nil)
	require.NoError(t, err)
	_, err = svc.Withdraw(context.Background(), maria, 4, nil)
	require.NoError(t, err)

	store.Err = errors.New("db down")
	_, err = svc.Deposit(context.Background(), maria, 1, nil)
	require.Error(t, err)

	assert.Equal(t, []recordedMovement{{"deposit", 10}, {"withdraw", -4}}, rec.got)
}
