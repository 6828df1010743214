package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

// Repository каталог комнат студии
type Repository struct {
	db      DBExecutor
	builder squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor, driver string) *Repository {
	return &Repository{
		db:      db,
		builder: psqlbuilder.ForDriver(driver),
	}
}

// GetAll возвращает активные комнаты по возрастанию номера
func (r *Repository) GetAll(ctx context.Context) ([]domain.Room, error) {
	query, args, err := r.builder.Select("number", "name").
		From("rooms").
		Where(squirrel.Eq{"active": true}).
		OrderBy("number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		var name sql.NullString
		if err := rows.Scan(&room.Number, &name); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan room: %v", ErrScanRow, err)
		}
		room.Name = name.String
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows iteration: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// Numbers возвращает номера активных комнат
func Numbers(rooms []domain.Room) []int {
	numbers := make([]int, 0, len(rooms))
	for _, room := range rooms {
		numbers = append(numbers, room.Number)
	}
	return numbers
}
