package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ordermgmt/internal/core/application/usecases/commands"
	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/pkg/errs"
)

func TestNewDeleteOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewDeleteOrderCommand(id)
	require.NoError(t, err)
	assert.True(t, id.IsEqual(cmd.OrderID()))
}

func TestNewDeleteOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewDeleteOrderCommand(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestDeleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewDeleteOrderCommand(id)

	repo := new(MockOrderRepository)
	repo.On("Delete", mock.Anything, id).Return(nil).Once()

	h := commands.NewDeleteOrderCommandHandler(repo)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewDeleteOrderCommand(id)

	repo := new(MockOrderRepository)
	repo.On("Delete", mock.Anything, id).
		Return(errs.NewObjectNotFoundError("orderID", id)).Once()

	h := commands.NewDeleteOrderCommandHandler(repo)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)

	var notFound *errs.ObjectNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DeleteOrderCommand{} // not constructed properly

	h := commands.NewDeleteOrderCommandHandler(new(MockOrderRepository))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDeleteOrderCommandIsNotConstructed)
}

func TestDeleteOrderCommandHandler_Handle_RepoError(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewDeleteOrderCommand(id)

	repo := new(MockOrderRepository)
	repo.On("Delete", mock.Anything, id).Return(errors.New("delete error")).Once()

	h := commands.NewDeleteOrderCommandHandler(repo)
	require.Error(t, h.Handle(ctx, cmd))
}
