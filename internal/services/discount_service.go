package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/models"

	"github.com/rs/zerolog"
)

type DiscountService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewDiscountService(db *sql.DB, logger zerolog.Logger) *DiscountService {
	return &DiscountService{
		db:     db,
		logger: logger,
	}
}

// finalPrice applies a discount to a price, floored at zero.
func finalPrice(price int64, discountType string, value int64) int64 {
	var discounted int64
	switch models.DiscountType(discountType) {
	case models.DiscountPercentage:
		discounted = price - price*value/100
	case models.DiscountFixed:
		discounted = price - value
	default:
		return price
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}

// checkUsable enforces the read-only half of validation: activity,
// expiration, usage limit. It never touches times_used.
func checkUsable(dc *models.DiscountCode, now time.Time) error {
	if !dc.IsActive {
		return ErrDiscountNotFound
	}
	if dc.ExpirationDate != nil && dc.ExpirationDate.Before(now) {
		return ErrDiscountExpired
	}
	if dc.UsageLimit != nil && dc.TimesUsed >= *dc.UsageLimit {
		return ErrDiscountLimitReached
	}
	return nil
}

const discountColumns = `id, code, value, type, expiration_date, usage_limit,
	times_used, is_active, created_by, created_at`

func scanDiscount(row rowScanner) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	var expiration sql.NullTime
	var limit sql.NullInt64

	err := row.Scan(
		&dc.ID, &dc.Code, &dc.Value, &dc.Type, &expiration, &limit,
		&dc.TimesUsed, &dc.IsActive, &dc.CreatedBy, &dc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiration.Valid {
		dc.ExpirationDate = &expiration.Time
	}
	if limit.Valid {
		l := int(limit.Int64)
		dc.UsageLimit = &l
	}
	return &dc, nil
}

func (s *DiscountService) Create(adminID int, req *models.CreateDiscountRequest) (*models.DiscountCode, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, errors.New("code is required")
	}
	if req.Value <= 0 {
		return nil, errors.New("value must be positive")
	}
	switch models.DiscountType(req.Type) {
	case models.DiscountPercentage:
		if req.Value > 100 {
			return nil, errors.New("percentage discount cannot exceed 100")
		}
	case models.DiscountFixed:
	default:
		return nil, errors.New("type must be percentage or fixed")
	}
	if req.UsageLimit != nil && *req.UsageLimit <= 0 {
		return nil, errors.New("usage limit must be positive")
	}

	var existingID int
	err := s.db.QueryRow("SELECT id FROM discount_codes WHERE code = ?", code).Scan(&existingID)
	if err == nil {
		return nil, errors.New("discount code already exists")
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO discount_codes (code, value, type, expiration_date, usage_limit, created_by)
		VALUES (?, ?, ?, ?, ?, ?)`,
		code, req.Value, req.Type, req.ExpirationDate, req.UsageLimit, adminID,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("Error creating discount code")
		return nil, fmt.Errorf("failed to create discount code: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get discount ID: %w", err)
	}

	s.logger.Info().Str("code", code).Int("admin_id", adminID).Msg("Discount code created")
	return s.GetByID(int(id))
}

func (s *DiscountService) GetByID(id int) (*models.DiscountCode, error) {
	dc, err := scanDiscount(s.db.QueryRow(
		"SELECT "+discountColumns+" FROM discount_codes WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return dc, nil
}

func (s *DiscountService) GetByCode(code string) (*models.DiscountCode, error) {
	dc, err := scanDiscount(s.db.QueryRow(
		"SELECT "+discountColumns+" FROM discount_codes WHERE code = ?",
		strings.ToUpper(strings.TrimSpace(code)),
	))
	if err == sql.ErrNoRows {
		return nil, ErrDiscountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return dc, nil
}

func (s *DiscountService) List() ([]*models.DiscountCode, error) {
	rows, err := s.db.Query("SELECT " + discountColumns + " FROM discount_codes ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var codes []*models.DiscountCode
	for rows.Next() {
		dc, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		codes = append(codes, dc)
	}
	return codes, rows.Err()
}

func (s *DiscountService) Update(id int, req *models.UpdateDiscountRequest) (*models.DiscountCode, error) {
	dc, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Value != nil {
		if *req.Value <= 0 {
			return nil, errors.New("value must be positive")
		}
		dc.Value = *req.Value
	}
	if req.Type != nil {
		switch models.DiscountType(*req.Type) {
		case models.DiscountPercentage, models.DiscountFixed:
			dc.Type = *req.Type
		default:
			return nil, errors.New("type must be percentage or fixed")
		}
	}
	if req.ExpirationDate != nil {
		dc.ExpirationDate = req.ExpirationDate
	}
	if req.UsageLimit != nil {
		if *req.UsageLimit <= 0 {
			return nil, errors.New("usage limit must be positive")
		}
		dc.UsageLimit = req.UsageLimit
	}
	if req.IsActive != nil {
		dc.IsActive = *req.IsActive
	}

	_, err = s.db.Exec(
		`UPDATE discount_codes SET value = ?, type = ?, expiration_date = ?, usage_limit = ?, is_active = ?
		WHERE id = ?`,
		dc.Value, dc.Type, dc.ExpirationDate, dc.UsageLimit, dc.IsActive, id,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("discount_id", id).Msg("Error updating discount code")
		return nil, fmt.Errorf("failed to update discount code: %w", err)
	}

	return s.GetByID(id)
}

func (s *DiscountService) Delete(id int) error {
	result, err := s.db.Exec("DELETE FROM discount_codes WHERE id = ?", id)
	if err != nil {
		s.logger.Error().Err(err).Int("discount_id", id).Msg("Error deleting discount code")
		return fmt.Errorf("failed to delete discount code: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Validate is a read-only preview of a code. Usage is counted at
// purchase time only, never here.
func (s *DiscountService) Validate(req *models.ValidateDiscountRequest) (*models.ValidateDiscountResponse, error) {
	dc, err := s.GetByCode(req.Code)
	if err != nil {
		return nil, err
	}
	if err := checkUsable(dc, time.Now()); err != nil {
		return nil, err
	}

	resp := &models.ValidateDiscountResponse{
		Code:  dc.Code,
		Type:  dc.Type,
		Value: dc.Value,
	}
	if req.Price != nil {
		fp := finalPrice(*req.Price, dc.Type, dc.Value)
		resp.FinalPrice = &fp
	}
	return resp, nil
}

// redeemInTx burns one use of a code inside the caller's purchase
// transaction. The conditional update re-checks the limit so two
// concurrent purchases cannot push times_used past it.
func (s *DiscountService) redeemInTx(tx *sql.Tx, code string, now time.Time) (*models.DiscountCode, error) {
	dc, err := scanDiscount(tx.QueryRow(
		"SELECT "+discountColumns+" FROM discount_codes WHERE code = ? FOR UPDATE",
		strings.ToUpper(strings.TrimSpace(code)),
	))
	if err == sql.ErrNoRows {
		return nil, ErrDiscountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := checkUsable(dc, now); err != nil {
		return nil, err
	}

	result, err := tx.Exec(
		`UPDATE discount_codes SET times_used = times_used + 1
		WHERE id = ? AND (usage_limit IS NULL OR times_used < usage_limit)`,
		dc.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to redeem discount code: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check redeem result: %w", err)
	}
	if affected == 0 {
		return nil, ErrDiscountLimitReached
	}

	dc.TimesUsed++
	return dc, nil
}
