package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/booking/model"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BusyRoomIDs(ctx context.Context, startTime, endTime time.Time) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// BusyRoomIDs returns the distinct ids of rooms that have at least one
// non-cancelled booking overlapping [startTime, endTime], boundaries
// inclusive on both ends.
func (repo *repositoryImpl) BusyRoomIDs(ctx context.Context, startTime, endTime time.Time) (ids []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".BusyRoomIDs")
	defer scope.End()

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s
		WHERE %s != :status
		AND (
			(%s <= :start_time AND %s >= :start_time)
			OR (%s <= :end_time AND %s >= :end_time)
			OR (%s >= :start_time AND %s <= :end_time)
		)`,
		model.FieldRoomID, model.TableName,
		model.FieldStatus,
		model.FieldStartTime, model.FieldEndTime,
		model.FieldStartTime, model.FieldEndTime,
		model.FieldStartTime, model.FieldEndTime,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"status":     model.StatusCancelled,
		"start_time": startTime,
		"end_time":   endTime,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &ids, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get busy rooms (%s): %w", model.EntityName, err)
	}

	return ids, nil
}
