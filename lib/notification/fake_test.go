package notification

import (
	"bytes"
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type fakeMailer struct {
	configured bool
	err        error
	from       string
	to         []string
	body       string
}

func (f *fakeMailer) IsConfigured() bool {
	return f.configured
}

func (f *fakeMailer) SendMessage(from string, to []string, message io.Reader) error {
	if f.err != nil {
		return f.err
	}
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, message); err != nil {
		return err
	}
	f.from = from
	f.to = to
	f.body = buf.String()
	return nil
}

type fakeLogStore struct {
	mu   sync.Mutex
	recs map[string]dbmodels.NotificationLog
}

func newFakeLogStore() *fakeLogStore {
	return &fakeLogStore{recs: map[string]dbmodels.NotificationLog{}}
}

func (f *fakeLogStore) Create(rec dbmodels.NotificationLog) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = uuid.NewString()
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeLogStore) Update(id string, updMap map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok {
		return errors.New("not found")
	}
	if v, ok := updMap["attempts"]; ok {
		rec.Attempts = v.(int)
	}
	if v, ok := updMap["status"]; ok {
		rec.Status = v.(models.NotificationStatus)
	}
	if v, ok := updMap["last_error"]; ok {
		rec.LastError = v.(string)
	}
	f.recs[id] = rec
	return nil
}

func (f *fakeLogStore) ListRetryable(maxAttempts, limit int) ([]dbmodels.NotificationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []dbmodels.NotificationLog{}
	for _, rec := range f.recs {
		if rec.Status == models.NotificationStatusFailed && rec.Attempts < maxAttempts && len(list) < limit {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeLogStore) all() []dbmodels.NotificationLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []dbmodels.NotificationLog{}
	for _, rec := range f.recs {
		list = append(list, rec)
	}
	return list
}
