package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

// Repository читает сохраненную историю сервисов.
// Запись обратно в хранилище не выполняется: реестр живет в памяти.
type Repository struct {
	db      DBExecutor
	builder squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория сервисов
// driver определяет формат плейсхолдеров (postgres или sqlite)
func NewRepository(db DBExecutor, driver string) *Repository {
	return &Repository{
		db:      db,
		builder: psqlbuilder.ForDriver(driver),
	}
}

var sessionColumns = []string{
	"id",
	"staff_email",
	"staff_name",
	"client_id",
	"client_name",
	"client_phone",
	"client_email",
	"appointment_id",
	"service_type",
	"location",
	"room_number",
	"duration_category",
	"base_cost",
	"additional_cost",
	"consumption_cost",
	"payment_method",
	"receipt_image",
	"notes",
	"closing_notes",
	"started_at",
	"ended_at",
	"duration_minutes",
	"overtime_seconds",
	"status",
	"edited_by_admin",
	"additional_times",
	"extras",
	"consumptions",
	"edit_history",
}

// LoadFinished загружает завершенные сервисы в порядке завершения
func (r *Repository) LoadFinished(ctx context.Context) ([]*domain.ServiceSession, error) {
	query, args, err := r.builder.Select(sessionColumns...).
		From("service_sessions").
		Where(squirrel.Eq{"status": string(domain.SessionFinished)}).
		OrderBy("ended_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LoadFinished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadFinished - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// CountFinished возвращает количество завершенных сервисов в хранилище
func (r *Repository) CountFinished(ctx context.Context) (int, error) {
	query, args, err := r.builder.Select("COUNT(*)").
		From("service_sessions").
		Where(squirrel.Eq{"status": string(domain.SessionFinished)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountFinished - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountFinished - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// scanSessions сканирует строки результата в список сервисов
func (r *Repository) scanSessions(rows *sql.Rows) ([]*domain.ServiceSession, error) {
	sessions := make([]*domain.ServiceSession, 0)

	for rows.Next() {
		var (
			s                                         domain.ServiceSession
			clientID, clientName                      sql.NullString
			clientPhone, clientEmail                  sql.NullString
			appointmentID, receiptImage               sql.NullString
			notes, closingNotes                       sql.NullString
			location, category, paymentMethod, status string
			roomNumber                                sql.NullInt64
			endedAt                                   sql.NullTime
			times, extras, consumptions, history      sql.NullString
		)

		err := rows.Scan(
			&s.ID,
			&s.StaffEmail,
			&s.StaffName,
			&clientID,
			&clientName,
			&clientPhone,
			&clientEmail,
			&appointmentID,
			&s.ServiceType,
			&location,
			&roomNumber,
			&category,
			&s.BaseCost,
			&s.AdditionalCost,
			&s.ConsumptionCost,
			&paymentMethod,
			&receiptImage,
			&notes,
			&closingNotes,
			&s.StartedAt,
			&endedAt,
			&s.DurationMinutes,
			&s.OvertimeSeconds,
			&status,
			&s.EditedByAdmin,
			&times,
			&extras,
			&consumptions,
			&history,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan session: %v", ErrScanRow, err)
		}

		s.Location = domain.Location(location)
		s.DurationCategory = domain.DurationCategory(category)
		s.PaymentMethod = domain.PaymentMethod(paymentMethod)
		s.Status = domain.SessionStatus(status)
		s.AppointmentID = nullString(appointmentID)
		s.ReceiptImage = nullString(receiptImage)
		s.Notes = nullString(notes)
		s.ClosingNotes = nullString(closingNotes)

		if clientID.Valid || clientName.Valid {
			s.Client = &domain.Client{
				ID:    clientID.String,
				Name:  clientName.String,
				Phone: nullString(clientPhone),
				Email: nullString(clientEmail),
			}
		}
		if roomNumber.Valid {
			room := int(roomNumber.Int64)
			s.RoomNumber = &room
		}
		if endedAt.Valid {
			ended := endedAt.Time
			s.EndedAt = &ended
		}

		if err := applyItems(&s, times, extras, consumptions, history); err != nil {
			return nil, fmt.Errorf("scanSessions - session id=%s: %w", s.ID, err)
		}

		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows iteration: %v", ErrScanRow, err)
	}

	return sessions, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
