package deposits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"callreport-api/ffiec"
	"callreport-api/models"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// objectReferenceFault is what the CDR returns when an institution filed
// nothing for the period.
const objectReferenceFault = "Object reference not set to an instance of an object"

// Source is the CDR collaborator.
type Source interface {
	ListFilers(ctx context.Context, creds ffiec.Credentials, period civil.Date) ([]models.Filer, error)
	ListTimeSeries(ctx context.Context, creds ffiec.Credentials, rssd string, period civil.Date) ([]models.TimeSeriesRecord, error)
	ListReportingPeriods(ctx context.Context, creds ffiec.Credentials) ([]models.ReportingPeriod, error)
}

// Journal records finished lookups.
type Journal interface {
	Record(ctx context.Context, lookup *models.Lookup) error
}

// Query is one deposit lookup request.
type Query struct {
	Credentials     ffiec.Credentials
	BankName        string
	State           string
	ReportingPeriod string
	// MDRM overrides the service default code when set.
	MDRM      string
	RequestID string
}

type Service struct {
	source      Source
	journal     Journal
	defaultCode string
	mode        MatchMode
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a Service. journal may be nil.
func NewService(source Source, journal Journal, defaultCode string, mode MatchMode, logger *zap.Logger) *Service {
	return &Service{
		source:      source,
		journal:     journal,
		defaultCode: defaultCode,
		mode:        mode,
		logger:      logger,
		now:         time.Now,
	}
}

// Lookup resolves the bank named in q and extracts its metric records.
// Every result, including upstream failures, is reported through the
// returned Outcome.
func (s *Service) Lookup(ctx context.Context, q Query) Outcome {
	start := s.now()
	out := s.lookup(ctx, q)
	s.record(ctx, q, out, s.now().Sub(start))
	return out
}

func (s *Service) lookup(ctx context.Context, q Query) Outcome {
	code := strings.TrimSpace(q.MDRM)
	if code == "" {
		code = s.defaultCode
	}

	if strings.TrimSpace(q.BankName) == "" {
		return invalid(code, errors.New("bank_name is required"))
	}
	if q.Credentials.Username == "" || q.Credentials.Token == "" {
		return invalid(code, ffiec.ErrMissingCredentials)
	}
	period, err := ffiec.ParsePeriod(q.ReportingPeriod)
	if err != nil {
		return invalid(code, err)
	}
	periodStr := ffiec.FormatPeriod(period)

	log := s.logger.With(
		zap.String("request_id", q.RequestID),
		zap.String("bank_name", q.BankName),
		zap.String("reporting_period", periodStr),
		zap.String("mdrm", code),
	)

	filers, err := s.source.ListFilers(ctx, q.Credentials, period)
	if err != nil {
		log.Error("failed to list filers", zap.Error(err))
		return upstream(code, nil, err)
	}
	if len(filers) == 0 {
		return Outcome{
			Status:  StatusNoFilers,
			Message: fmt.Sprintf("No filers returned for period %s.", periodStr),
			MDRM:    code,
		}
	}

	filer, ok := Resolve(filers, q.BankName, q.State)
	if !ok {
		return Outcome{
			Status:  StatusBankNotFound,
			Message: fmt.Sprintf("Bank '%s' not found for period %s.", q.BankName, periodStr),
			MDRM:    code,
		}
	}
	log.Debug("resolved filer", zap.String("rssd", filer.IDRSSD), zap.String("name", filer.Name))

	if filer.IDRSSD == "" {
		return Outcome{
			Status:  StatusNoRSSD,
			Message: "No RSSD ID found for the selected bank.",
			Filer:   &filer,
			MDRM:    code,
		}
	}

	series, err := s.source.ListTimeSeries(ctx, q.Credentials, filer.IDRSSD, period)
	if err != nil {
		if strings.Contains(err.Error(), objectReferenceFault) {
			log.Info("cdr reported no filing", zap.String("rssd", filer.IDRSSD))
			return Outcome{
				Status:  StatusNoData,
				Message: "The FFIEC service returned 'Object reference not set...' for this period. Possibly no data was filed.",
				Filer:   &filer,
				MDRM:    code,
			}
		}
		log.Error("failed to fetch time series", zap.String("rssd", filer.IDRSSD), zap.Error(err))
		return upstream(code, &filer, err)
	}
	if len(series) == 0 {
		return Outcome{
			Status:  StatusNoTimeSeries,
			Message: "No time series data returned.",
			Filer:   &filer,
			MDRM:    code,
		}
	}

	records := Extract(series, code, s.mode)
	if len(records) == 0 {
		return Outcome{
			Status:  StatusNoDeposit,
			Message: fmt.Sprintf("No deposit metric (%s) found in the filing for this period.", code),
			Filer:   &filer,
			MDRM:    code,
		}
	}

	return Outcome{
		Status:  StatusSuccess,
		Message: "Deposit metric found.",
		Filer:   &filer,
		Records: records,
		MDRM:    code,
	}
}

// ReportingPeriods lists the periods the CDR holds call report data for.
func (s *Service) ReportingPeriods(ctx context.Context, creds ffiec.Credentials) ([]models.ReportingPeriod, error) {
	if creds.Username == "" || creds.Token == "" {
		return nil, ffiec.ErrMissingCredentials
	}
	return s.source.ListReportingPeriods(ctx, creds)
}

func (s *Service) record(ctx context.Context, q Query, out Outcome, took time.Duration) {
	if s.journal == nil {
		return
	}

	l := &models.Lookup{
		ID:              uuid.NewString(),
		RequestID:       q.RequestID,
		BankName:        q.BankName,
		State:           q.State,
		ReportingPeriod: q.ReportingPeriod,
		MDRM:            out.MDRM,
		Status:          string(out.Status),
		Message:         out.Message,
		RecordCount:     len(out.Records),
		DurationMs:      took.Milliseconds(),
		CreatedAt:       s.now(),
	}
	if out.Filer != nil {
		l.FilerRSSD = out.Filer.IDRSSD
		l.FilerName = out.Filer.Name
	}

	if err := s.journal.Record(ctx, l); err != nil {
		s.logger.Warn("failed to journal lookup", zap.String("request_id", q.RequestID), zap.Error(err))
	}
}

func invalid(code string, err error) Outcome {
	return Outcome{Status: StatusInvalidRequest, Message: err.Error(), MDRM: code, Err: err}
}

func upstream(code string, filer *models.Filer, err error) Outcome {
	return Outcome{Status: StatusUpstreamError, Message: err.Error(), Filer: filer, MDRM: code, Err: err}
}
