package model

import (
	"errors"
	"time"
)

// SourceType identifies which ingestion stream produced a DirectoryRecord.
type SourceType string

const (
	SourceCSV        SourceType = "csv"
	SourceTranscript SourceType = "transcript"
)

// ResolutionStatus tracks what the Entity Resolver did with a record.
type ResolutionStatus string

const (
	ResolutionUnresolved ResolutionStatus = "unresolved"
	ResolutionMerged     ResolutionStatus = "merged"
	ResolutionStaged     ResolutionStatus = "staged"
	ResolutionCreated    ResolutionStatus = "created"
)

// DirectoryRecord is one raw ingested row — a structured directory CSV line
// or a transcript-derived speaker record — awaiting entity resolution into
// a canonical Profile (spec §4.1).
type DirectoryRecord struct {
	ID               string
	Source           SourceType
	EventID          *string
	RawName          string
	RawEmail         *string
	RawCompany       *string
	RawWebsite       *string
	ResolvedProfileID *string
	Status           ResolutionStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DirectoryRecordDTO is the JSON representation.
type DirectoryRecordDTO struct {
	ID                string           `json:"id"`
	Source            SourceType       `json:"source"`
	EventID           *string          `json:"event_id,omitempty"`
	RawName           string           `json:"raw_name"`
	RawEmail          *string          `json:"raw_email,omitempty"`
	RawCompany        *string          `json:"raw_company,omitempty"`
	RawWebsite        *string          `json:"raw_website,omitempty"`
	ResolvedProfileID *string          `json:"resolved_profile_id,omitempty"`
	Status            ResolutionStatus `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (d *DirectoryRecord) ToDTO() *DirectoryRecordDTO {
	return &DirectoryRecordDTO{
		ID:                d.ID,
		Source:            d.Source,
		EventID:           d.EventID,
		RawName:           d.RawName,
		RawEmail:          d.RawEmail,
		RawCompany:        d.RawCompany,
		RawWebsite:        d.RawWebsite,
		ResolvedProfileID: d.ResolvedProfileID,
		Status:            d.Status,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

var (
	ErrDirectoryRecordNotFound = errors.New("directory record not found")
	ErrRawNameRequired         = errors.New("raw name is required")
)

type ErrorCode string

const (
	CodeDirectoryRecordNotFound ErrorCode = "DIRECTORY_RECORD_NOT_FOUND"
	CodeRawNameRequired         ErrorCode = "RAW_NAME_REQUIRED"
	CodeInternalError           ErrorCode = "INTERNAL_ERROR"
)

func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrDirectoryRecordNotFound):
		return CodeDirectoryRecordNotFound
	case errors.Is(err, ErrRawNameRequired):
		return CodeRawNameRequired
	default:
		return CodeInternalError
	}
}
