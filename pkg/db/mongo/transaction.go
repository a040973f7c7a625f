package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "courtly/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionFunc func(ctx mongo.SessionContext) error

// TransactionManager runs a unit of work inside one Mongo transaction.
// Both budgets are bounded: exceeding the execution budget surfaces as a
// retryable timeout, never as a silent failure.
type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client     *mongo.Client
	waitBudget time.Duration
	execBudget time.Duration
}

func NewTransactionManager(client *mongo.Client, waitBudget, execBudget time.Duration) TransactionManager {
	return &mongoTransactionManager{
		client:     client,
		waitBudget: waitBudget,
		execBudget: execBudget,
	}
}

func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	waitCtx, cancelWait := context.WithTimeout(ctx, m.waitBudget)
	session, err := m.client.StartSession()
	cancelWait()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return apperrors.Timeout("Timed out waiting for a database session")
		}
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "Failed to start database session", 503)
	}
	defer session.EndSession(ctx)

	execCtx, cancelExec := context.WithTimeout(ctx, m.execBudget)
	defer cancelExec()

	txnOpts := options.Transaction().SetMaxCommitTime(&m.execBudget)
	_, err = session.WithTransaction(execCtx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	}, txnOpts)

	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Timeout("Transaction exceeded its execution budget")
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
