package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kanerr "github.com/amterp/boardkit/internal/errors"
	"github.com/amterp/boardkit/internal/id"
	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/internal/service"
	"github.com/amterp/boardkit/testutil"
)

func TestCardService_AddCard_Pure(t *testing.T) {
	svc := testutil.NewServices(t)
	list := testutil.List("l1", "Produce", testutil.Card("c1", "Apples"))

	next := svc.Cards.AddCard(list, "Pears")

	require.Len(t, next.Cards, 2)
	assert.Equal(t, "Pears", next.Cards[1].Title)
	assert.Equal(t, "l1", next.ID)
	assert.Equal(t, "Produce", next.Title)
	assert.Len(t, list.Cards, 1, "input must not be modified")
	assert.Equal(t, 0, svc.Store.Writes())
}

func TestCardService_AddCard_BlankTitle(t *testing.T) {
	svc := testutil.NewServices(t)
	list := testutil.List("l1", "Produce")

	assert.Equal(t, list, svc.Cards.AddCard(list, "  "))
}

func TestCardService_AddCard_AvoidsSiblingIDs(t *testing.T) {
	cards := service.NewCardService(nil, id.NewSequence("c"))
	list := testutil.List("l1", "Produce", testutil.Card("c-1", "Apples"))

	next := cards.AddCard(list, "Pears")
	assert.Equal(t, "c-2", next.Cards[1].ID)
}

func TestCardService_DeleteCard_Pure(t *testing.T) {
	svc := testutil.NewServices(t)
	list := testutil.List("l1", "Produce",
		testutil.Card("c1", "Apples"),
		testutil.Card("c2", "Pears"),
		testutil.Card("c3", "Plums"),
	)

	next := svc.Cards.DeleteCard(list, "c2")
	assert.Equal(t, []model.Card{testutil.Card("c1", "Apples"), testutil.Card("c3", "Plums")}, next.Cards)
	assert.Len(t, list.Cards, 3)

	assert.Equal(t, list, svc.Cards.DeleteCard(list, "missing"))
}

func TestCardService_RenameCard_Pure(t *testing.T) {
	svc := testutil.NewServices(t)
	list := testutil.List("l1", "Produce", testutil.Card("c1", "Apples"))

	next, err := svc.Cards.RenameCard(list, "c1", "Green apples")
	require.NoError(t, err)
	assert.Equal(t, "Green apples", next.Cards[0].Title)
	assert.Equal(t, "Apples", list.Cards[0].Title)

	_, err = svc.Cards.RenameCard(list, "missing", "x")
	assert.True(t, kanerr.IsNotFound(err))
}

// The walkthrough a user does on a fresh install.
func TestCardService_GroceriesScenario(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(t)

	board, err := svc.Boards.Add(ctx, "Groceries")
	require.NoError(t, err)
	withList, err := svc.Lists.AddList(ctx, board.ID, "Produce")
	require.NoError(t, err)
	listID := withList.Lists[0].ID

	list, err := svc.Cards.AddCardTo(ctx, board.ID, listID, "Apples")
	require.NoError(t, err)
	require.Len(t, list.Cards, 1)
	apples := list.Cards[0]

	boards, err := svc.Boards.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Board{
		testutil.Board(board.ID, "Groceries",
			testutil.List(listID, "Produce", testutil.Card(apples.ID, "Apples")),
		),
	}, boards)

	list, err = svc.Cards.DeleteCardFrom(ctx, board.ID, listID, apples.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Cards)
}

func TestCardService_AddCardTo_IDsStayStable(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(t)
	seedGroceries(t, svc)

	_, err := svc.Cards.AddCardTo(ctx, "b1", "l1", "Plums")
	require.NoError(t, err)
	_, err = svc.Boards.Rename(ctx, "b1", "Shopping")
	require.NoError(t, err)

	board, err := svc.Boards.Get(ctx, "b1")
	require.NoError(t, err)
	list, _ := board.FindList("l1")
	assert.Equal(t, "c1", list.Cards[0].ID)
	assert.Equal(t, "c2", list.Cards[1].ID)
	assert.Equal(t, "Plums", list.Cards[2].Title)
}

func TestCardService_AddCardTo_Unknown(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(t)
	seedGroceries(t, svc)

	_, err := svc.Cards.AddCardTo(ctx, "missing", "l1", "x")
	assert.True(t, kanerr.IsNotFound(err))

	_, err = svc.Cards.AddCardTo(ctx, "b1", "missing", "x")
	assert.True(t, kanerr.IsNotFound(err))
}

func TestCardService_AddCardTo_BlankTitle(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(t)
	seedGroceries(t, svc)
	writes := svc.Store.Writes()

	list, err := svc.Cards.AddCardTo(ctx, "b1", "l1", "")
	require.NoError(t, err)
	assert.Len(t, list.Cards, 2)
	assert.Equal(t, writes, svc.Store.Writes())
}

func TestCardService_DeleteCardFrom_UnknownCardIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(t)
	seedGroceries(t, svc)
	writes := svc.Store.Writes()

	list, err := svc.Cards.DeleteCardFrom(ctx, "b1", "l1", "missing")
	require.NoError(t, err)
	assert.Len(t, list.Cards, 2)
	assert.Equal(t, writes, svc.Store.Writes())
}

func TestCardService_RenameCardIn(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(t)
	seedGroceries(t, svc)

	list, err := svc.Cards.RenameCardIn(ctx, "b1", "l1", "c2", "Conference pears")
	require.NoError(t, err)
	assert.Equal(t, "Conference pears", list.Cards[1].Title)

	_, err = svc.Cards.RenameCardIn(ctx, "b1", "l1", "missing", "x")
	assert.True(t, kanerr.IsNotFound(err))

	_, err = svc.Cards.RenameCardIn(ctx, "b1", "l1", "missing", "")
	assert.True(t, kanerr.IsNotFound(err))
}

func TestCardService_ConcurrentAddsToSameList(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(t)
	seedGroceries(t, svc)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Cards.AddCardTo(ctx, "b1", "l2", "Milk")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	board, err := svc.Boards.Get(ctx, "b1")
	require.NoError(t, err)
	dairy, _ := board.FindList("l2")
	assert.Len(t, dairy.Cards, n)
}
