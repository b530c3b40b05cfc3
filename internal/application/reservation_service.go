package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/ids"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/metrics"
)

// ページングの既定値
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ReservationService struct {
	txManager       transaction.Manager
	reservationRepo reservation.Repository
	ticketRepo      ticket.Repository
	performances    PerformanceLoader
	metrics         *metrics.Metrics
}

// NewReservationService は ReservationService を作成する。m は nil でもよい
func NewReservationService(tm transaction.Manager, rr reservation.Repository, tr ticket.Repository, pl PerformanceLoader, m *metrics.Metrics) *ReservationService {
	return &ReservationService{txManager: tm, reservationRepo: rr, ticketRepo: tr, performances: pl, metrics: m}
}

type SeatRequest struct {
	PerformanceID string
	Row           int
	Seat          int
}

type CreateReservationInput struct {
	Identity user.Identity
	Seats    []SeatRequest
}

// ReservationPage はユーザーの予約一覧の1ページ
type ReservationPage struct {
	Count    int
	Page     int
	PageSize int
	Results  []*reservation.Reservation
}

// CreateReservation は全座席を1トランザクションで確保する
// 1席でも確保できなければ何も登録せず、競合した座席を *ticket.ConflictError で返す
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	start := time.Now()
	log := logger.FromContext(ctx).With(zap.String("user_id", input.Identity.UserID))

	res, err := s.createReservation(ctx, input)
	status := reservationStatus(err)
	s.observe(status, time.Since(start))

	if err != nil {
		fields := []zap.Field{zap.String("status", status), zap.Error(err)}
		var conflict *ticket.ConflictError
		if errors.As(err, &conflict) {
			fields = append(fields, zap.Int("contested", len(conflict.Seats)))
		}
		if status == metrics.StatusError {
			log.Error("予約作成に失敗", fields...)
		} else {
			log.Info("予約を受け付けられませんでした", fields...)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.TicketsBookedTotal.Add(float64(len(res.Tickets)))
	}
	log.Info("予約を作成しました", zap.String("reservation_id", res.ID), zap.Int("tickets", len(res.Tickets)))
	return res, nil
}

func (s *ReservationService) createReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	// 公演IDを標準表記にそろえてから重複を検査する
	refs := make([]ticket.SeatRef, len(input.Seats))
	var malformed string
	for i, seat := range input.Seats {
		id, ok := ids.Canonical(seat.PerformanceID)
		if !ok {
			id = seat.PerformanceID
			if malformed == "" {
				malformed = id
			}
		}
		refs[i] = ticket.SeatRef{PerformanceID: id, Row: seat.Row, Seat: seat.Seat}
	}

	res := reservation.NewReservation(input.Identity.UserID, refs)
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if malformed != "" {
		return nil, fmt.Errorf("%w: %s", performance.ErrPerformanceNotFound, malformed)
	}

	// 公演ごとにホールを読み込み、座席の範囲を検証する
	checked := make(map[string]bool)
	for _, ref := range refs {
		if checked[ref.PerformanceID] {
			continue
		}
		p, err := s.performances.GetPerformance(ctx, ref.PerformanceID)
		if err != nil {
			return nil, err
		}
		for _, r := range refs {
			if r.PerformanceID != ref.PerformanceID {
				continue
			}
			if err := ticket.ValidateBounds(p.Hall, r.Row, r.Seat); err != nil {
				return nil, err
			}
		}
		checked[ref.PerformanceID] = true
	}

	err := transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		if err := s.reservationRepo.Create(ctx, tx, res); err != nil {
			return err
		}
		return s.ticketRepo.Insert(ctx, tx, res.Tickets...)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetReservation は所有者または管理者のみ取得できる
func (s *ReservationService) GetReservation(ctx context.Context, id string, identity user.Identity) (*reservation.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanAccess(res.UserID) {
		return nil, reservation.ErrNotOwner
	}
	return res, nil
}

// ListUserReservations は呼び出し元自身の予約を新しい順に返す
func (s *ReservationService) ListUserReservations(ctx context.Context, identity user.Identity, page, pageSize int) (*ReservationPage, error) {
	if identity.UserID == "" {
		return nil, reservation.ErrUserIDRequired
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	count, err := s.reservationRepo.CountByUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	results, err := s.reservationRepo.ListByUser(ctx, identity.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &ReservationPage{Count: count, Page: page, PageSize: pageSize, Results: results}, nil
}

// DeleteReservation は予約とそのチケットを1トランザクションで削除し、座席を解放する
func (s *ReservationService) DeleteReservation(ctx context.Context, id string, identity user.Identity) error {
	res, err := s.GetReservation(ctx, id, identity)
	if err != nil {
		return err
	}

	var released int
	err = transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		n, err := s.ticketRepo.DeleteByReservation(ctx, tx, res.ID)
		if err != nil {
			return err
		}
		released = n
		return s.reservationRepo.Delete(ctx, tx, res.ID)
	})
	if err != nil {
		return fmt.Errorf("予約削除に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.TicketsReleasedTotal.Add(float64(released))
	}
	logger.FromContext(ctx).Info("予約を削除しました",
		zap.String("reservation_id", res.ID),
		zap.String("deleted_by", identity.UserID),
		zap.Int("released", released),
	)
	return nil
}

func (s *ReservationService) observe(status string, d time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReservationsTotal.WithLabelValues(status).Inc()
	s.metrics.ReservationDuration.WithLabelValues(status).Observe(d.Seconds())
}

// reservationStatus はエラーをメトリクスのラベルに変換する
func reservationStatus(err error) string {
	switch apperr.Kind(err) {
	case nil:
		if err == nil {
			return metrics.StatusSuccess
		}
		return metrics.StatusError
	case apperr.ErrConflict:
		return metrics.StatusConflict
	case apperr.ErrNotFound:
		return metrics.StatusNotFound
	default:
		return metrics.StatusInvalid
	}
}
