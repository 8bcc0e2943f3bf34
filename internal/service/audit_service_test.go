package service

import (
	"context"
	"testing"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_GetAuditLogs(t *testing.T) {
	repo := &fakeAudit{}
	user := uuid.New()
	ctx := context.Background()
	require.NoError(t, writeAudit(ctx, repo, user.String(), model.ActionCreatePurchase, "p1", "PO-1001", map[string]int{"items": 2}))
	require.NoError(t, writeAudit(ctx, repo, "", model.ActionStockReconcile, "p2", "Soap", nil))

	svc := NewAuditService(repo)

	all, total, err := svc.GetAuditLogs(ctx, "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, all, 2)
	assert.Equal(t, user.String(), all[0].UserID)
	assert.JSONEq(t, `{"items":2}`, all[0].Details)
	assert.Equal(t, "system", all[1].UserID)

	filtered, total, err := svc.GetAuditLogs(ctx, model.ActionStockReconcile, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "p2", filtered[0].EntityID)
}
