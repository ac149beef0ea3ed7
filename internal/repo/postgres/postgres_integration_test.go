//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/handler"
	pgrepo "github.com/Gunvolt24/consumer_handler/internal/repo/postgres"
	"github.com/Gunvolt24/consumer_handler/internal/testutil"
)

// 1) Миграции + идемпотентное сохранение через сессию
func TestRepo_SaveTwice_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, pgrepo.Migrate(ctx, pg.DSN, handler.NopLogger{}))
	// повторный прогон ничего не делает
	require.NoError(t, pgrepo.Migrate(ctx, pg.DSN, handler.NopLogger{}))

	sess, err := pgrepo.Connect(ctx, pg.DSN, handler.NopLogger{})
	require.NoError(t, err)
	defer func() { _ = sess.Close(context.Background()) }()

	repo := pgrepo.NewMessageRepository(sess)
	msg := testutil.MakeMessage("orders")
	require.NoError(t, repo.Save(ctx, &msg))
	require.NoError(t, repo.Save(ctx, &msg))

	var n int
	require.NoError(t, pg.Pool.QueryRow(ctx,
		`SELECT count(*) FROM consumed_messages WHERE consumer = $1 AND id = $2`, msg.Consumer, msg.ID,
	).Scan(&n))
	require.Equal(t, 1, n)
}

// 2) Clear откатывает брошенную транзакцию, сессия остаётся пригодной
func TestSession_ClearRollsBackOpenTx_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, pgrepo.Migrate(ctx, pg.DSN, handler.NopLogger{}))

	sess, err := pgrepo.Connect(ctx, pg.DSN, handler.NopLogger{})
	require.NoError(t, err)
	defer func() { _ = sess.Close(context.Background()) }()

	// Обработчик "забыл" завершить транзакцию
	_, err = sess.Exec(ctx, "BEGIN")
	require.NoError(t, err)
	msg := testutil.MakeMessage("orders")
	require.NoError(t, pgrepo.NewMessageRepository(sess).Save(ctx, &msg))

	sess.Clear(ctx)
	require.True(t, sess.IsUsable(ctx))

	var n int
	require.NoError(t, pg.Pool.QueryRow(ctx, `SELECT count(*) FROM consumed_messages WHERE id = $1`, msg.ID).Scan(&n))
	require.Equal(t, 0, n, "uncommitted insert must be rolled back")

	// После закрытия соединения сессия непригодна
	require.NoError(t, sess.Close(ctx))
	require.False(t, sess.IsUsable(ctx))
}

// 3) Провайдер открывает отдельную сессию на каждый вызов
func TestSessions_OpenAndClose_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := pgrepo.NewSessions(pg.DSN, map[string]string{"reporting": pg.DSN}, handler.NopLogger{})
	a, err := p.Session(ctx, "default")
	require.NoError(t, err)
	b, err := p.Session(ctx, "reporting")
	require.NoError(t, err)
	require.NotSame(t, a, b)

	require.NoError(t, p.Close(ctx))
	require.False(t, a.IsUsable(ctx))
	require.False(t, b.IsUsable(ctx))
}

// 4) Журнал: чтение по id и постраничный список (новые первыми)
func TestJournal_GetAndList_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, pgrepo.Migrate(ctx, pg.DSN, handler.NopLogger{}))

	repo := pgrepo.NewMessageRepository(pg.Pool)
	base := time.Now().UTC().Truncate(time.Microsecond)
	var ids []string
	for i := 0; i < 3; i++ {
		msg := testutil.MakeMessage("orders", func(m *domain.Message) {
			m.ReceivedAt = base.Add(time.Duration(i) * time.Second)
		})
		require.NoError(t, repo.Save(ctx, &msg))
		ids = append(ids, msg.ID)
	}
	other := testutil.MakeMessage("billing")
	require.NoError(t, repo.Save(ctx, &other))

	journal := pgrepo.NewMessageJournal(pg.Pool)

	got, err := journal.GetMessage(ctx, "orders", ids[0])
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "itest", got.Headers["source"])
	require.True(t, base.Equal(got.ReceivedAt))

	missing, err := journal.GetMessage(ctx, "billing", ids[0])
	require.NoError(t, err)
	require.Nil(t, missing)

	page, err := journal.MessagesByConsumer(ctx, "orders", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, ids[2], page[0].ID)
	require.Equal(t, ids[1], page[1].ID)

	rest, err := journal.MessagesByConsumer(ctx, "orders", 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, ids[0], rest[0].ID)
}
