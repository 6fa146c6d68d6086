package session

import (
	"fmt"

	"github.com/rezonia/reimburse-report/internal/transport"
)

// AddFiles appends attachments to the selection
func (s *Session) AddFiles(files ...transport.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, files...)
}

// RemoveFile drops the attachment at index i
func (s *Session) RemoveFile(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.files) {
		return fmt.Errorf("no file at index %d", i)
	}
	s.files = append(s.files[:i:i], s.files[i+1:]...)
	return nil
}

// ClearFiles empties the selection
func (s *Session) ClearFiles() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
}

// Files returns a copy of the selection; the first entry is the invoice
func (s *Session) Files() []transport.Attachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]transport.Attachment(nil), s.files...)
}

// SetNote sets the free-text note sent with the next submission
func (s *Session) SetNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = note
}
