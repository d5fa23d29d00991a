package store

import (
	"errors"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"smartchef/internal/models"
)

// dateLayout is the calendar-date form every expiry date is normalized
// to at write time.
const dateLayout = "2006-01-02"

var (
	// ErrEmptyName is returned when an item is added without a name.
	ErrEmptyName = errors.New("item name is required")
	// ErrInvalidDate is returned when an expiry date does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("expiry date must be in YYYY-MM-DD format")
	// ErrItemNotFound is returned when an update targets an unknown item id.
	ErrItemNotFound = errors.New("item not found")
)

// expirationDocument is the on-disk shape of the expiration file. The
// notifications array is reserved and always written empty.
type expirationDocument struct {
	Version       int                 `json:"version"`
	Items         []models.PantryItem `json:"items"`
	Notifications []string            `json:"notifications"`
}

func newExpirationDocument() *expirationDocument {
	return &expirationDocument{
		Version:       schemaVersion,
		Items:         []models.PantryItem{},
		Notifications: []string{},
	}
}

// ExpirationStore persists tracked perishable items and answers
// date-relative queries about them. It follows the same
// load-once, rewrite-on-mutation model as PreferenceStore.
type ExpirationStore struct {
	path   string
	logger *zap.Logger

	mu  sync.Mutex
	doc *expirationDocument

	now func() time.Time
}

// NewExpirationStore opens the expiration document at path, creating it
// with the default empty shape if absent. Load failures fall back to an
// empty document.
func NewExpirationStore(path string, logger *zap.Logger) *ExpirationStore {
	s := &ExpirationStore{
		path:   path,
		logger: logger,
		now:    time.Now,
	}

	doc := newExpirationDocument()
	err := loadDocument(path, doc)
	switch {
	case err == nil:
		s.doc = doc
	case os.IsNotExist(err):
		s.doc = newExpirationDocument()
		if saveErr := saveDocument(path, s.doc); saveErr != nil {
			logger.Warn("failed to create expiration file", zap.Error(saveErr))
		}
	default:
		logger.Warn("failed to load expiration data, starting empty", zap.Error(err))
		s.doc = newExpirationDocument()
	}

	return s
}

// AddItem validates and appends a new tracked item. The expiry date is
// normalized to YYYY-MM-DD; a malformed date rejects the item without
// persisting anything. The assigned id is len(items)+1.
func (s *ExpirationStore) AddItem(name, expiryDate, quantity, category string) (models.PantryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return models.PantryItem{}, ErrEmptyName
	}
	normalized, err := normalizeDate(expiryDate)
	if err != nil {
		return models.PantryItem{}, err
	}

	item := models.PantryItem{
		ID:         len(s.doc.Items) + 1,
		Name:       name,
		ExpiryDate: normalized,
		Quantity:   quantity,
		Category:   category,
		AddedDate:  s.today().Format(dateLayout),
	}
	s.doc.Items = append(s.doc.Items, item)
	if err := s.save(); err != nil {
		return models.PantryItem{}, err
	}
	return item, nil
}

// RemoveItem filters the item out by id and persists unconditionally.
// Removing an id that does not exist is a silent no-op rewrite.
func (s *ExpirationStore) RemoveItem(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doc.Items[:0]
	for _, item := range s.doc.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.doc.Items = kept
	return s.save()
}

// UpdateItem applies the non-nil fields of upd to the item with the
// given id. An expiry date update is validated and normalized the same
// way as AddItem.
func (s *ExpirationStore) UpdateItem(id int, upd models.ItemUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Items {
		if s.doc.Items[i].ID != id {
			continue
		}
		item := &s.doc.Items[i]
		if upd.Name != nil {
			if *upd.Name == "" {
				return ErrEmptyName
			}
			item.Name = *upd.Name
		}
		if upd.ExpiryDate != nil {
			normalized, err := normalizeDate(*upd.ExpiryDate)
			if err != nil {
				return err
			}
			item.ExpiryDate = normalized
		}
		if upd.Quantity != nil {
			item.Quantity = *upd.Quantity
		}
		if upd.Category != nil {
			item.Category = *upd.Category
		}
		return s.save()
	}
	return ErrItemNotFound
}

// ListItems returns all tracked items in insertion order.
func (s *ExpirationStore) ListItems() []models.PantryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PantryItem{}, s.doc.Items...)
}

// ExpiringWithin returns items whose expiry date falls between today
// and days from now inclusive, annotated with days_left and sorted
// ascending by it. Items with unparsable dates are logged and skipped.
func (s *ExpirationStore) ExpiringWithin(days int) []models.ExpiringItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	expiring := []models.ExpiringItem{}
	for _, item := range s.doc.Items {
		expiry, err := time.Parse(dateLayout, item.ExpiryDate)
		if err != nil {
			s.logger.Warn("skipping item with unparsable expiry date",
				zap.String("name", item.Name), zap.String("expiry_date", item.ExpiryDate))
			continue
		}
		daysLeft := daysBetween(today, expiry)
		if daysLeft >= 0 && daysLeft <= days {
			expiring = append(expiring, models.ExpiringItem{PantryItem: item, DaysLeft: daysLeft})
		}
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysLeft < expiring[j].DaysLeft
	})
	return expiring
}

// Expired returns items whose expiry date has passed, annotated with
// days_expired and sorted descending by it (most overdue first). An
// item expiring today is not yet expired.
func (s *ExpirationStore) Expired() []models.ExpiredItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	expired := []models.ExpiredItem{}
	for _, item := range s.doc.Items {
		expiry, err := time.Parse(dateLayout, item.ExpiryDate)
		if err != nil {
			s.logger.Warn("skipping item with unparsable expiry date",
				zap.String("name", item.Name), zap.String("expiry_date", item.ExpiryDate))
			continue
		}
		daysExpired := daysBetween(expiry, today)
		if daysExpired > 0 {
			expired = append(expired, models.ExpiredItem{PantryItem: item, DaysExpired: daysExpired})
		}
	}

	sort.SliceStable(expired, func(i, j int) bool {
		return expired[i].DaysExpired > expired[j].DaysExpired
	})
	return expired
}

func (s *ExpirationStore) save() error {
	if err := saveDocument(s.path, s.doc); err != nil {
		s.logger.Error("failed to save expiration data", zap.Error(err))
		return err
	}
	return nil
}

// today returns the current local calendar date at UTC midnight, the
// same frame time.Parse puts stored dates in.
func (s *ExpirationStore) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// normalizeDate parses a YYYY-MM-DD string and re-formats it, rejecting
// anything that does not parse.
func normalizeDate(date string) (string, error) {
	if date == "" {
		return "", ErrInvalidDate
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return parsed.Format(dateLayout), nil
}
