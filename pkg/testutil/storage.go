package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/habitforge/backend/pkg/storage"
)

// MockStorage keeps uploaded objects in memory so tests can assert both the
// upload and the purge side of the artifact lifecycle.
type MockStorage struct {
	mutex   sync.Mutex
	counter int
	objects map[string][]byte

	UploadErr error
	RemoveErr error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{objects: make(map[string][]byte)}
}

func (s *MockStorage) Upload(ctx context.Context, object *storage.UploadObject) (*storage.UploadResponse, error) {
	if s.UploadErr != nil {
		return nil, s.UploadErr
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.counter++
	fileName := fmt.Sprintf("%s/%d-%s", object.Prefix, s.counter, object.FileName)
	s.objects[fileName] = object.Data

	return &storage.UploadResponse{
		Url:      fmt.Sprintf("http://storage.local/%s/%s", object.Bucket, fileName),
		FileName: fileName,
	}, nil
}

func (s *MockStorage) Remove(ctx context.Context, fileName string) error {
	if s.RemoveErr != nil {
		return s.RemoveErr
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.objects[fileName]; !ok {
		return errors.New("object not found")
	}

	delete(s.objects, fileName)
	return nil
}

func (s *MockStorage) Contains(fileName string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, ok := s.objects[fileName]
	return ok
}

func (s *MockStorage) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.objects)
}
