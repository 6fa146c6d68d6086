package session

import (
	"context"

	"github.com/rezonia/reimburse-report/internal/export"
)

// Export encodes the last result. Failures are reported and leave the
// presentation state unchanged.
func (s *Session) Export(ctx context.Context, format export.Format) (*export.Artifact, error) {
	rows, err := s.rows()
	if err != nil {
		s.reportExport(ctx, err)
		return nil, err
	}
	artifact, err := s.exporter.Export(format, rows)
	if err != nil {
		s.reportExport(ctx, err)
		return nil, err
	}
	return artifact, nil
}

// ExportAll encodes the last result in every format
func (s *Session) ExportAll(ctx context.Context) ([]*export.Artifact, error) {
	rows, err := s.rows()
	if err != nil {
		s.reportExport(ctx, err)
		return nil, err
	}
	artifacts, err := s.exporter.Bundle(ctx, rows)
	if err != nil {
		s.reportExport(ctx, err)
		return nil, err
	}
	return artifacts, nil
}

func (s *Session) rows() (export.Rows, error) {
	s.mu.RLock()
	result, fileName := s.result, s.fileName
	s.mu.RUnlock()

	if result == nil {
		return nil, ErrNoResult
	}
	return export.BuildRows(result.Record, result.Raw, fileName)
}

func (s *Session) reportExport(ctx context.Context, err error) {
	s.logger.WarnContext(ctx, "export failed", "error", err)
	s.report("Export failed: " + err.Error())
}
