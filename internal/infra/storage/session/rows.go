package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Позиции сервиса хранятся в JSON колонках рядом с основной строкой

type additionalTimeRow struct {
	Label   string          `json:"label"`
	Cost    decimal.Decimal `json:"cost"`
	Receipt *string         `json:"receipt,omitempty"`
	AddedAt time.Time       `json:"addedAt"`
}

type extraRow struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Receipt     *string         `json:"receipt,omitempty"`
	AddedAt     time.Time       `json:"addedAt"`
}

type consumptionRow struct {
	Description string          `json:"description"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int             `json:"quantity"`
	AddedAt     time.Time       `json:"addedAt"`
}

type editableValuesRow struct {
	ServiceType      string          `json:"serviceType"`
	DurationCategory string          `json:"durationCategory"`
	BaseCost         decimal.Decimal `json:"baseCost"`
	AdditionalCost   decimal.Decimal `json:"additionalCost"`
	ConsumptionCost  decimal.Decimal `json:"consumptionCost"`
}

type adminEditRow struct {
	EditedAt time.Time         `json:"editedAt"`
	Reason   string            `json:"reason"`
	Previous editableValuesRow `json:"previous"`
	Updated  editableValuesRow `json:"updated"`
}

// decodeItems разбирает JSON колонку; NULL и пустая строка дают пустой список
func decodeItems[T any](column string, raw sql.NullString) ([]T, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw.String), &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeItems, column, err)
	}
	return items, nil
}

func (v editableValuesRow) toDomain() domain.EditableValues {
	return domain.EditableValues{
		ServiceType:      v.ServiceType,
		DurationCategory: domain.DurationCategory(v.DurationCategory),
		BaseCost:         v.BaseCost,
		AdditionalCost:   v.AdditionalCost,
		ConsumptionCost:  v.ConsumptionCost,
	}
}

// applyItems заполняет коллекции сервиса из JSON колонок
func applyItems(s *domain.ServiceSession, times, extras, consumptions, history sql.NullString) error {
	timeRows, err := decodeItems[additionalTimeRow]("additional_times", times)
	if err != nil {
		return err
	}
	for _, r := range timeRows {
		s.AdditionalTimes = append(s.AdditionalTimes, domain.AdditionalTime{
			Label: r.Label, Cost: r.Cost, Receipt: r.Receipt, AddedAt: r.AddedAt,
		})
	}

	extraRows, err := decodeItems[extraRow]("extras", extras)
	if err != nil {
		return err
	}
	for _, r := range extraRows {
		s.Extras = append(s.Extras, domain.Extra{
			Description: r.Description, Cost: r.Cost, Receipt: r.Receipt, AddedAt: r.AddedAt,
		})
	}

	consumptionRows, err := decodeItems[consumptionRow]("consumptions", consumptions)
	if err != nil {
		return err
	}
	for _, r := range consumptionRows {
		s.Consumptions = append(s.Consumptions, domain.Consumption{
			Description: r.Description, UnitCost: r.UnitCost, Quantity: r.Quantity, AddedAt: r.AddedAt,
		})
	}

	historyRows, err := decodeItems[adminEditRow]("edit_history", history)
	if err != nil {
		return err
	}
	for _, r := range historyRows {
		s.EditHistory = append(s.EditHistory, domain.AdminEdit{
			EditedAt: r.EditedAt,
			Reason:   r.Reason,
			Previous: r.Previous.toDomain(),
			Updated:  r.Updated.toDomain(),
		})
	}

	return nil
}
