package memory

import (
	"context"

	"vet-practice-management/internal/domain/records"
)

func recordID(m records.MedicalRecord) int64 { return m.ID }

// AddRecord ignora Date del llamador y sella la hora actual.
func (s *Store) AddRecord(ctx context.Context, m records.MedicalRecord) (records.MedicalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m = m.Clone()
	m.ID = s.nextID()
	m.Date = s.now().In(s.loc)
	s.records = append(s.records, m)
	return m.Clone(), nil
}

func (s *Store) UpdateRecord(ctx context.Context, id int64, p records.Patch) (records.MedicalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.records, id, recordID)
	if i < 0 {
		return records.MedicalRecord{}, notFound("medical record", id)
	}
	m := s.records[i].Clone()
	p.Apply(&m)
	m.ID = id
	s.records[i] = m
	return m.Clone(), nil
}

func (s *Store) GetRecord(ctx context.Context, id int64) (records.MedicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.records, id, recordID)
	if i < 0 {
		return records.MedicalRecord{}, notFound("medical record", id)
	}
	return s.records[i].Clone(), nil
}

func (s *Store) ListRecords(ctx context.Context) ([]records.MedicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]records.MedicalRecord, 0, len(s.records))
	for _, m := range s.records {
		out = append(out, m.Clone())
	}
	return out, nil
}
