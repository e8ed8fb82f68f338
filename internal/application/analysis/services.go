package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/bryanwahyu/hairscan/internal/application"
	"github.com/bryanwahyu/hairscan/internal/domain/ai"
	domain "github.com/bryanwahyu/hairscan/internal/domain/analysis"
	"github.com/bryanwahyu/hairscan/internal/domain/parsefailures"
)

// Service implements the analysis use-cases. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	Repo       domain.Repository
	FailureLog parsefailures.Repository
	Images     domain.ImageStore
	AI         ai.Client
	Clock      application.Clock
}

//
// ==== INPUTS ====
//

// Input is what a caller hands to Analyze. The set of variants is closed:
// ImageInput, StoredImageInput and TextInput.
type Input interface {
	isInput()
}

// ImageInput is a fresh photo: it is uploaded, then sent to the model.
type ImageInput struct {
	Data        []byte
	ContentType string
}

// StoredImageInput points at a photo already in the image store.
type StoredImageInput struct {
	Key string
}

// TextInput is a model response obtained elsewhere; only parsing runs.
type TextInput struct {
	Raw       string
	SourceRef string
}

func (ImageInput) isInput()       {}
func (StoredImageInput) isInput() {}
func (TextInput) isInput()        {}

// Result of a successful analysis.
type Result struct {
	Record *domain.Record `json:"record"`
	// DuplicateOf is set when the subject's previous record says the same thing.
	DuplicateOf domain.RecordID `json:"duplicate_of,omitempty"`
}

//
// ==== USE CASES ====
//

// Analyze obtains the model response for in, parses it and stores the
// record. A parse rejection is stored as a parse failure and returned as the
// typed *domain.Error. The inference call is never retried here.
func (s *Service) Analyze(ctx context.Context, subject string, in Input) (Result, error) {
	raw, ref, err := s.respond(ctx, subject, in)
	if err != nil {
		return Result{}, err
	}

	rec, err := s.parser().Parse(raw, subject, ref)
	if err != nil {
		s.recordFailure(ctx, subject, ref, raw, err)
		return Result{}, err
	}

	res := Result{Record: rec}
	latest, err := s.Repo.Latest(ctx, subject)
	if err != nil {
		return Result{}, fmt.Errorf("load latest analysis: %w", err)
	}
	if latest != nil && latest.IsSimilarTo(rec) {
		res.DuplicateOf = latest.ID
	}

	if err := s.Repo.Save(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("save analysis: %w", err)
	}
	return res, nil
}

// Preview parses a response without storing anything.
func (s *Service) Preview(subject, raw, sourceRef string) (*domain.Record, error) {
	return s.parser().Parse(raw, subject, sourceRef)
}

func (s *Service) respond(ctx context.Context, subject string, in Input) (raw, ref string, err error) {
	switch in := in.(type) {
	case ImageInput:
		if len(in.Data) == 0 {
			return "", "", ErrEmptyImage
		}
		key := fmt.Sprintf("%s/%s%s", subject, uuid.NewString(), extFor(in.ContentType))
		ref, err := s.Images.PutImage(ctx, key, in.Data, in.ContentType)
		if err != nil {
			return "", "", fmt.Errorf("upload image: %w", err)
		}
		raw, err := s.AI.Analyze(ctx, ai.Image{Data: in.Data, ContentType: in.ContentType})
		if err != nil {
			return "", ref, err
		}
		return raw, ref, nil

	case StoredImageInput:
		data, contentType, err := s.Images.GetImage(ctx, in.Key)
		if err != nil {
			return "", "", fmt.Errorf("load image: %w", err)
		}
		raw, err := s.AI.Analyze(ctx, ai.Image{Data: data, ContentType: contentType})
		if err != nil {
			return "", in.Key, err
		}
		return raw, in.Key, nil

	case TextInput:
		return in.Raw, in.SourceRef, nil

	default:
		return "", "", fmt.Errorf("unsupported input %T", in)
	}
}

// ErrEmptyImage is returned for an ImageInput without bytes.
var ErrEmptyImage = errors.New("image is empty")

func (s *Service) parser() domain.Parser {
	p := domain.Parser{}
	if s.Clock != nil {
		p.Now = s.Clock.Now
	}
	return p
}

func (s *Service) recordFailure(ctx context.Context, subject, ref, raw string, cause error) {
	if s.FailureLog == nil {
		return
	}
	f := &parsefailures.ParseFailure{
		SubjectID:   subject,
		SourceRef:   ref,
		Kind:        string(domain.KindOf(cause)),
		Message:     cause.Error(),
		RawResponse: raw,
	}
	if s.Clock != nil {
		f.CreatedAt = s.Clock.Now()
	}
	if err := s.FailureLog.Save(ctx, f); err != nil {
		log.Printf("save parse failure subject=%s kind=%s: %v", subject, f.Kind, err)
	}
}

// Get ambil 1 analysis by id
func (s *Service) Get(ctx context.Context, subject string, id domain.RecordID) (*domain.Record, error) {
	return s.Repo.Get(ctx, subject, id)
}

// Latest returns the newest record or nil.
func (s *Service) Latest(ctx context.Context, subject string) (*domain.Record, error) {
	return s.Repo.Latest(ctx, subject)
}

// List returns one page of a subject's records, newest first.
func (s *Service) List(ctx context.Context, subject string, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	data, err := s.Repo.Paginate(ctx, subject, page, pageSize)
	if err != nil {
		return domain.PaginatedResult{}, err
	}
	if data == nil {
		data = []*domain.Record{}
	}
	return domain.PaginatedResult{Data: data, Page: page, PageSize: pageSize}, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, subject string, id domain.RecordID) error {
	return s.Repo.Delete(ctx, subject, id)
}

// Failures lists recent parse failures of a subject.
func (s *Service) Failures(ctx context.Context, subject string, limit int) ([]*parsefailures.ParseFailure, error) {
	if s.FailureLog == nil {
		return []*parsefailures.ParseFailure{}, nil
	}
	return s.FailureLog.ListBySubject(ctx, subject, limit)
}

// helper
func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	default:
		return ".jpg"
	}
}
