package service

import (
	"context"
	"fmt"
	"time"

	"atrium/internal/domains/booking/model"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"

	"github.com/rs/zerolog/log"
)

// IsRoomAvailable reports whether the room has no active booking overlapping
// [startTime, endTime]. excludeBookingID ignores one booking so an update is
// never compared against its own row; pass the empty string on create.
//
// The overlap test is inclusive on both boundaries: a booking ending at
// 10:00:00 conflicts with one starting at 10:00:00. Intervals are compared
// at second granularity.
func (s *serviceImpl) IsRoomAvailable(ctx context.Context, roomID string, startTime, endTime time.Time, excludeBookingID string) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	count, err := s.repo.Count(ctx, overlapFilter(roomID, startTime.Truncate(time.Second), endTime.Truncate(time.Second), excludeBookingID))
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to check room availability")

		return false, fmt.Errorf("failed to check room availability: %w", err)
	}

	return count == 0, nil
}

// overlapFilter matches every non-cancelled booking on the room whose
// interval overlaps the candidate one:
//
//	startTime within [start_time, end_time]
//	OR endTime within [start_time, end_time]
//	OR the candidate interval contains the booking entirely
func overlapFilter(roomID string, startTime, endTime time.Time, excludeBookingID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorNotEq,
			Value:    model.StatusCancelled,
			Table:    model.TableName,
		},
	}

	if excludeBookingID != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeBookingID,
			Table:    model.TableName,
		})
	}

	filters = append(filters, intervalOverlap(startTime, endTime))

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// intervalOverlap is the inclusive-boundary interval intersection test shared
// by the availability check and the time-range listing.
func intervalOverlap(startTime, endTime time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{
						ArgName:  "cand_start_lo",
						Field:    model.FieldStartTime,
						Operator: gDto.FilterOperatorLessEq,
						Value:    startTime,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "cand_start_hi",
						Field:    model.FieldEndTime,
						Operator: gDto.FilterOperatorGreaterEq,
						Value:    startTime,
						Table:    model.TableName,
					},
				},
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{
						ArgName:  "cand_end_lo",
						Field:    model.FieldStartTime,
						Operator: gDto.FilterOperatorLessEq,
						Value:    endTime,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "cand_end_hi",
						Field:    model.FieldEndTime,
						Operator: gDto.FilterOperatorGreaterEq,
						Value:    endTime,
						Table:    model.TableName,
					},
				},
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{
						ArgName:  "contain_lo",
						Field:    model.FieldStartTime,
						Operator: gDto.FilterOperatorGreaterEq,
						Value:    startTime,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "contain_hi",
						Field:    model.FieldEndTime,
						Operator: gDto.FilterOperatorLessEq,
						Value:    endTime,
						Table:    model.TableName,
					},
				},
			},
		},
	}
}

// rangeFilter matches every booking, in any status, whose interval overlaps
// the range, further restricted by the caller's filters. Used by the
// time-range listing.
func rangeFilter(filter gDto.FilterGroup, startTime, endTime time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  append(filter.Filters, intervalOverlap(startTime, endTime)),
	}
}
