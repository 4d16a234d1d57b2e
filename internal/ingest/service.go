package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"screening-backend/internal/candidate"
	"screening-backend/internal/extract"
	"screening-backend/internal/pipeline"
	"screening-backend/internal/shared/storage/object"
)

// ErrNoIdentity marks a parsed record with neither name nor email, which
// cannot be deduplicated and is not stored.
var ErrNoIdentity = errors.New("candidate has no name or email")

// Report summarizes one ingestion batch.
type Report struct {
	Total      int      `json:"total"`
	Ingested   int      `json:"ingested"`
	Duplicates int      `json:"duplicates"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// Service contains business logic for resume ingestion.
type Service struct {
	Parser Parser
	Store  Store
	// Objects keeps the original documents when set.
	Objects object.ObjectStore
	// ExtractText overrides document text extraction in tests.
	ExtractText func(ctx context.Context, data []byte, mimeType, fileName string) (string, error)
}

func (s *Service) extractText(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if s.ExtractText != nil {
		return s.ExtractText(ctx, data, mimeType, fileName)
	}
	return extract.ExtractTextFromBytes(ctx, data, mimeType, fileName)
}

// IngestArchive walks a zip of resume documents and ingests each supported
// entry. A bad document is reported and skipped; the batch continues.
func (s *Service) IngestArchive(ctx context.Context, jobID string, archive []byte) (Report, error) {
	var report Report

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return report, fmt.Errorf("open archive: %w", err)
	}

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if f.FileInfo().IsDir() || skipEntry(f.Name) {
			continue
		}
		name := path.Base(f.Name)
		report.Total++

		data, err := readZipEntry(f)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		inserted, err := s.IngestDocument(ctx, jobID, name, data)
		switch {
		case err != nil:
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", name, err))
			log.Printf("ingest document job=%s file=%s: %v", jobID, name, err)
		case inserted:
			report.Ingested++
		default:
			report.Duplicates++
		}
	}
	log.Printf("ingest batch job=%s total=%d ingested=%d duplicates=%d failed=%d",
		jobID, report.Total, report.Ingested, report.Duplicates, report.Failed)
	return report, nil
}

// IngestDocument extracts, parses and stores one resume document. It
// reports false without error for a duplicate candidate.
func (s *Service) IngestDocument(ctx context.Context, jobID, fileName string, data []byte) (bool, error) {
	text, err := s.extractText(ctx, data, "", fileName)
	if err != nil {
		return false, err
	}
	rec, err := s.Parser.Parse(ctx, text)
	if err != nil {
		return false, err
	}

	name := strings.TrimSpace(rec.FullName())
	email := strings.TrimSpace(rec.PersonalInformation.EmailAddress)
	if name == "" && email == "" {
		return false, ErrNoIdentity
	}

	filePath := ""
	if s.Objects != nil {
		key, _, _, err := s.Objects.Save(ctx, jobID, fileName, bytes.NewReader(data))
		if err != nil {
			return false, fmt.Errorf("store original: %w", err)
		}
		filePath = key
	}

	raw, err := candidate.Encode(rec)
	if err != nil {
		return false, err
	}
	return s.Store.InsertIfAbsent(ctx, pipeline.Candidate{
		Name:     name,
		Email:    email,
		Phone:    rec.PersonalInformation.PhoneNumber,
		JobID:    jobID,
		Raw:      raw,
		FilePath: filePath,
	})
}

// skipEntry drops archive noise: hidden files, macOS resource forks and
// anything that is not a supported resume document.
func skipEntry(entryName string) bool {
	for _, seg := range strings.Split(entryName, "/") {
		if seg == "__MACOSX" || strings.HasPrefix(seg, ".") {
			return true
		}
	}
	switch strings.ToLower(path.Ext(entryName)) {
	case ".pdf", ".docx":
		return false
	}
	return true
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
