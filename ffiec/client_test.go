package ffiec

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testCreds  = Credentials{Username: "jdoe", Token: "tok"}
	testPeriod = civil.Date{Year: 2024, Month: time.March, Day: 31}
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithRateLimit(1000, 10), WithLogger(zap.NewNop()))
}

func TestNewClient(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := NewClient()
		assert.Equal(t, DefaultBaseURL, c.baseURL)
		assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
		assert.NotNil(t, c.limiter)
		assert.NotNil(t, c.logger)
	})

	t.Run("options", func(t *testing.T) {
		hc := &http.Client{}
		c := NewClient(WithHTTPClient(hc), WithTimeout(5*time.Second), WithRateLimit(1, 1))
		assert.Same(t, hc, c.httpClient)
		assert.Equal(t, 5*time.Second, hc.Timeout)
		assert.InDelta(t, 1.0, float64(c.limiter.Limit()), 1e-9)
		assert.Equal(t, 1, c.limiter.Burst())
	})
}

func TestListFilers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/RetrievePanelOfReporters", r.URL.Path)
		assert.Equal(t, "jdoe", r.Header.Get("UserID"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authentication"))
		assert.Equal(t, "Call", r.Header.Get("dataSeries"))
		assert.Equal(t, "03/31/2024", r.Header.Get("reportingPeriodEndDate"))

		_, _ = w.Write([]byte(`[
			{"ID_RSSD": 123, "Name": "First National Bank ", "State": "TX", "City": "AUSTIN", "FDICCertNumber": 0, "HasFiledForReportingPeriod": true},
			{"ID_RSSD": "456", "Name": "Second Bank", "State": "CA"}
		]`))
	})

	filers, err := c.ListFilers(context.Background(), testCreds, testPeriod)
	require.NoError(t, err)
	require.Len(t, filers, 2)
	assert.Equal(t, "123", filers[0].IDRSSD)
	assert.Equal(t, "First National Bank", filers[0].Name)
	assert.Empty(t, filers[0].FDICCertNumber)
	assert.True(t, filers[0].HasFiled)
	assert.Equal(t, "456", filers[1].IDRSSD)
	assert.Equal(t, "CA", filers[1].State)
}

func TestListFilers_MissingCredentials(t *testing.T) {
	c := NewClient()
	_, err := c.ListFilers(context.Background(), Credentials{Username: "jdoe"}, testPeriod)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json string", `"Object reference not set to an instance of an object."`, "Object reference not set to an instance of an object."},
		{"json object", `{"message": "Invalid credentials"}`, "Invalid credentials"},
		{"plain text", "bad gateway\n", "bad gateway"},
		{"empty", "", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.ListFilers(context.Background(), testCreds, testPeriod)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

const sampleSDF = `Call Date;Bank RSSD Identifier;MDRM #;Value;Last Update;Short Definition;Call Schedule;Line Number
20240331;123;RCON2200;1500000;2024-04-30T00:00:00;TOTAL DEPOSITS;RCE;7
20240331;123;RCONB834;0.25;2024-04-30T00:00:00;SOME RATIO;RCE;8
20240331;123;RCON9999;true;2024-04-30T00:00:00;FLAG;RCB;1
20240331;123;TEXT1234;n/a;2024-04-30T00:00:00;NOTE;RCB;2
;;;;;;;
`

func TestListTimeSeries(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(sampleSDF))

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/RetrieveFacsimile", r.URL.Path)
		assert.Equal(t, "ID_RSSD", r.Header.Get("fiIdType"))
		assert.Equal(t, "123", r.Header.Get("fiId"))
		assert.Equal(t, "SDF", r.Header.Get("facsimileFormat"))
		_ = json.NewEncoder(w).Encode(encoded)
	})

	records, err := c.ListTimeSeries(context.Background(), testCreds, "123", testPeriod)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "RCON2200", records[0].MDRM)
	assert.Equal(t, "123", records[0].RSSD)
	assert.Equal(t, "2024-Q1", records[0].Quarter)
	assert.Equal(t, "TOTAL DEPOSITS", records[0].ShortDefinition)
	require.NotNil(t, records[0].IntData)
	assert.Equal(t, int64(1500000), *records[0].IntData)
	assert.Equal(t, int64(1500000), records[0].Value())

	require.NotNil(t, records[1].FloatData)
	assert.True(t, decimal.RequireFromString("0.25").Equal(*records[1].FloatData))

	require.NotNil(t, records[2].BoolData)
	assert.True(t, *records[2].BoolData)

	require.NotNil(t, records[3].StrData)
	assert.Equal(t, "n/a", *records[3].StrData)
}

func TestParseSDF(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		records, err := ParseSDF(strings.NewReader(""), testPeriod)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("missing mdrm column", func(t *testing.T) {
		_, err := ParseSDF(strings.NewReader("a;b\n1;2\n"), testPeriod)
		assert.Error(t, err)
	})
}

func TestListReportingPeriods(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/RetrieveReportingPeriods", r.URL.Path)
		_, _ = w.Write([]byte(`["12/31/2023", "3/31/2024", "garbage"]`))
	})

	periods, err := c.ListReportingPeriods(context.Background(), testCreds)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "12/31/2023", periods[0].Date)
	assert.Equal(t, "03/31/2024", periods[1].Date)
}

func TestParsePeriod(t *testing.T) {
	d, err := ParsePeriod("03/31/2024")
	require.NoError(t, err)
	assert.Equal(t, testPeriod, d)

	d, err = ParsePeriod(" 3/31/2024 ")
	require.NoError(t, err)
	assert.Equal(t, testPeriod, d)

	_, err = ParsePeriod("2024-03-31")
	assert.Error(t, err)

	assert.Equal(t, "03/31/2024", FormatPeriod(testPeriod))
}
