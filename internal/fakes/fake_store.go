package fakes

import (
	"github.com/hroncok/ansible-bender/internal/db"
	"github.com/hroncok/ansible-bender/pkg/build"
)

// FakeStore keeps build records in memory.
type FakeStore struct {
	Records map[int64]*build.Build
	LogsSet map[int64]string
	nextID  int64

	CreateErr error
	UpdateErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Records: map[int64]*build.Build{},
		LogsSet: map[int64]string{},
	}
}

func (s *FakeStore) Create(b *build.Build) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.nextID++
	b.ID = s.nextID
	copied := *b
	s.Records[b.ID] = &copied
	return nil
}

func (s *FakeStore) Update(b *build.Build) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if _, ok := s.Records[b.ID]; !ok {
		return db.ErrBuildNotFound
	}
	copied := *b
	s.Records[b.ID] = &copied
	return nil
}

func (s *FakeStore) Get(id int64) (*build.Build, error) {
	b, ok := s.Records[id]
	if !ok {
		return nil, db.ErrBuildNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *FakeStore) Latest() (*build.Build, error) {
	if s.nextID == 0 {
		return nil, db.ErrBuildNotFound
	}
	return s.Get(s.nextID)
}

func (s *FakeStore) List() ([]*build.Build, error) {
	var builds []*build.Build
	for id := s.nextID; id >= 1; id-- {
		if b, ok := s.Records[id]; ok {
			copied := *b
			builds = append(builds, &copied)
		}
	}
	return builds, nil
}

func (s *FakeStore) SetLogs(id int64, logs string) error {
	if _, ok := s.Records[id]; !ok {
		return db.ErrBuildNotFound
	}
	s.LogsSet[id] = logs
	return nil
}

func (s *FakeStore) Logs(id int64) (string, error) {
	if _, ok := s.Records[id]; !ok {
		return "", db.ErrBuildNotFound
	}
	return s.LogsSet[id], nil
}
