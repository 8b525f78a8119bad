package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "hearth/internal/errors"
	"hearth/internal/ledger"
	"hearth/internal/logger"
	"hearth/internal/models"
	"hearth/internal/moneycodec"
)

// financeService handles finance-ledger business logic. Only the home owner
// may write records; members see the records they created plus those shared
// with them through visibility rows.
type financeService struct {
	db          *gorm.DB
	homeService HomeServicer
	codec       moneycodec.Codec
}

// NewFinanceService creates a new FinanceServicer.
func NewFinanceService(db *gorm.DB, homeService HomeServicer, codec moneycodec.Codec) FinanceServicer {
	return &financeService{
		db:          db,
		homeService: homeService,
		codec:       codec,
	}
}

// validateInput checks the writable fields common to create and update.
func (s *financeService) validateInput(in FinanceInput) error {
	if in.Type != models.FinanceTypeIncome && in.Type != models.FinanceTypeExpense {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if in.Amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if in.TransactionDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction date is required")
	}
	if in.PaymentMonths != nil && *in.PaymentMonths < 1 {
		return apperrors.ErrInvalidPaymentMonths
	}
	return nil
}

// validateVisibility ensures every listed user is an accepted member of the
// home or its owner. Any invalid ID fails the whole write.
func (s *financeService) validateVisibility(homeID, ownerID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}

	memberIDs, err := s.homeService.AcceptedMemberIDs(homeID)
	if err != nil {
		return err
	}
	allowed := make(map[uint]bool, len(memberIDs)+1)
	allowed[ownerID] = true
	for _, id := range memberIDs {
		allowed[id] = true
	}

	for _, id := range userIDs {
		if !allowed[id] {
			return apperrors.ErrVisibilityNotMember
		}
	}
	return nil
}

// CreateFinanceRecord creates a finance record in a home. Only the home owner
// may create records.
func (s *financeService) CreateFinanceRecord(userID, homeID uint, in FinanceInput) (*models.FinanceRecord, error) {
	var home models.Home
	if err := s.db.First(&home, homeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if home.OwnerID != userID {
		return nil, apperrors.ErrNotHomeOwner
	}

	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	if err := s.validateVisibility(homeID, home.OwnerID, in.VisibleToUserIDs); err != nil {
		return nil, err
	}

	encoded, err := s.codec.Encode(in.Amount)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidAmount, err)
	}

	record := &models.FinanceRecord{
		HomeID:          homeID,
		Type:            in.Type,
		Category:        in.Category,
		Amount:          encoded,
		Description:     in.Description,
		TransactionDate: in.TransactionDate,
		IsRecurring:     in.IsRecurring,
		DueDate:         in.DueDate,
		PaymentMonths:   in.PaymentMonths,
		CreatedBy:       userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return replaceVisibility(tx, record.ID, in.VisibleToUserIDs)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateFinanceRecord replaces the writable fields of a record. When the
// input carries a visibility list, existing visibility rows are fully
// replaced; a nil list leaves them untouched.
func (s *financeService) UpdateFinanceRecord(userID, financeID uint, in FinanceInput) (*models.FinanceRecord, error) {
	record, home, err := s.getOwnedRecord(userID, financeID)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	if in.VisibleToUserIDs != nil {
		if err := s.validateVisibility(record.HomeID, home.OwnerID, in.VisibleToUserIDs); err != nil {
			return nil, err
		}
	}

	encoded, err := s.codec.Encode(in.Amount)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidAmount, err)
	}

	record.Type = in.Type
	record.Category = in.Category
	record.Amount = encoded
	record.Description = in.Description
	record.TransactionDate = in.TransactionDate
	record.IsRecurring = in.IsRecurring
	record.DueDate = in.DueDate
	record.PaymentMonths = in.PaymentMonths

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if in.VisibleToUserIDs == nil {
			return nil
		}
		if err := tx.Unscoped().Where("finance_id = ?", record.ID).Delete(&models.FinanceVisibility{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return replaceVisibility(tx, record.ID, in.VisibleToUserIDs)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteFinanceRecord removes a record and its visibility rows.
func (s *financeService) DeleteFinanceRecord(userID, financeID uint) error {
	record, _, err := s.getOwnedRecord(userID, financeID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("finance_id = ?", record.ID).Delete(&models.FinanceVisibility{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// getOwnedRecord loads a record and verifies the requester owns its home.
func (s *financeService) getOwnedRecord(userID, financeID uint) (*models.FinanceRecord, *models.Home, error) {
	var record models.FinanceRecord
	if err := s.db.First(&record, financeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrFinanceNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var home models.Home
	if err := s.db.First(&home, record.HomeID).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if home.OwnerID != userID {
		return nil, nil, apperrors.ErrNotHomeOwner
	}
	return &record, &home, nil
}

// replaceVisibility inserts visibility rows for a record.
func replaceVisibility(tx *gorm.DB, financeID uint, userIDs []uint) error {
	for _, id := range userIDs {
		row := &models.FinanceVisibility{FinanceID: financeID, UserID: id}
		if err := tx.Create(row).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// loadVisibleRecords fetches the records the user may see in a home, with a
// storage-level prefilter for month queries. The prefilter is a superset of
// the truly active set (raw month match, recurring, installment plan, or due
// date present); the classifier remains the authority on inclusion.
func (s *financeService) loadVisibleRecords(userID, homeID uint, filter FinanceFilter) ([]models.FinanceRecord, error) {
	if _, err := s.homeService.GetHomeByID(userID, homeID); err != nil {
		return nil, err
	}

	q := s.db.Model(&models.FinanceRecord{}).
		Preload("Visibility").
		Where("home_id = ?", homeID).
		Where("created_by = ? OR id IN (?)", userID,
			s.db.Model(&models.FinanceVisibility{}).
				Select("finance_id").
				Where("user_id = ?", userID))

	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.Month != nil && filter.Year != nil {
		monthStart := time.Date(*filter.Year, time.Month(*filter.Month), 1, 0, 0, 0, 0, time.UTC)
		nextMonth := monthStart.AddDate(0, 1, 0)
		q = q.Where(
			"(transaction_date >= ? AND transaction_date < ?) OR is_recurring = ? OR payment_months > 1 OR due_date IS NOT NULL",
			monthStart, nextMonth, true,
		)
	}

	var records []models.FinanceRecord
	if err := q.Order("transaction_date DESC").Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}

// toLedgerRecord decodes a stored record into the ledger's pure form. A
// corrupt amount decodes to zero so one bad row never fails a whole request.
func (s *financeService) toLedgerRecord(rec *models.FinanceRecord) ledger.Record {
	amount := s.codec.Decode(rec.Amount)
	if amount == 0 {
		logger.Get().Warnw("finance amount failed to decode, substituting zero",
			"finance_id", rec.ID,
			"home_id", rec.HomeID,
		)
	}

	months := 0
	if rec.PaymentMonths != nil {
		months = *rec.PaymentMonths
	}
	return ledger.Record{
		ID:              rec.ID,
		Kind:            ledger.EntryKind(rec.Type),
		Amount:          amount,
		TransactionDate: rec.TransactionDate,
		IsRecurring:     rec.IsRecurring,
		DueDate:         rec.DueDate,
		PaymentMonths:   months,
	}
}

// ListFinanceRecords returns the records visible to the user, decoded. With a
// month/year filter the result is the monthly projection: installment plans
// expand into one derived entry per queried month and recurring entries carry
// a re-anchored display date.
func (s *financeService) ListFinanceRecords(userID, homeID uint, filter FinanceFilter) ([]FinanceEntry, error) {
	records, err := s.loadVisibleRecords(userID, homeID, filter)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.FinanceRecord, len(records))
	ledgerRecords := make([]ledger.Record, 0, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
		ledgerRecords = append(ledgerRecords, s.toLedgerRecord(&records[i]))
	}

	if filter.Month != nil && filter.Year != nil {
		occurrences := ledger.ProjectMonth(ledgerRecords, time.Month(*filter.Month), *filter.Year)
		entries := make([]FinanceEntry, 0, len(occurrences))
		for _, occ := range occurrences {
			rec := byID[occ.OriginalID]
			entry := buildEntry(rec, occ.Amount, occ.Date)
			entry.ID = occ.ID
			entry.PlanIndex = occ.PlanIndex
			entry.PlanMonths = occ.PlanMonths
			entry.DateReprojected = occ.DateReprojected
			entries = append(entries, entry)
		}
		return entries, nil
	}

	entries := make([]FinanceEntry, 0, len(records))
	for i := range records {
		rec := &records[i]
		entries = append(entries, buildEntry(rec, s.codec.Decode(rec.Amount), rec.TransactionDate))
	}
	return entries, nil
}

// buildEntry maps a stored record onto a list entry with the given decoded
// amount and display date.
func buildEntry(rec *models.FinanceRecord, amount float64, date time.Time) FinanceEntry {
	visible := make([]uint, 0, len(rec.Visibility))
	for _, v := range rec.Visibility {
		visible = append(visible, v.UserID)
	}
	return FinanceEntry{
		ID:                rec.ID,
		OriginalFinanceID: rec.ID,
		HomeID:            rec.HomeID,
		Type:              rec.Type,
		Category:          rec.Category,
		Amount:            amount,
		Description:       rec.Description,
		Date:              date,
		IsRecurring:       rec.IsRecurring,
		DueDate:           rec.DueDate,
		PaymentMonths:     rec.PaymentMonths,
		VisibleToUserIDs:  visible,
		CreatedBy:         rec.CreatedBy,
	}
}

// GetMonthlyBalance aggregates the visible records of a home into income and
// expense totals for the queried month.
func (s *financeService) GetMonthlyBalance(userID, homeID uint, month, year int) (*ledger.Summary, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidBalancePeriod
	}

	filter := FinanceFilter{Month: &month, Year: &year}
	records, err := s.loadVisibleRecords(userID, homeID, filter)
	if err != nil {
		return nil, err
	}

	ledgerRecords := make([]ledger.Record, 0, len(records))
	for i := range records {
		ledgerRecords = append(ledgerRecords, s.toLedgerRecord(&records[i]))
	}

	summary := ledger.Balance(ledgerRecords, time.Month(month), year)
	return &summary, nil
}
