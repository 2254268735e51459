package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agendai/agendai/internal/logging"
)

// NameGetCountryInfo identifies the country facts capability.
const NameGetCountryInfo = "getCountryInfo"

const defaultCountryBaseURL = "https://restcountries.com/v3.1"

// CountryTool fetches capital and population facts for a country.
type CountryTool struct {
	BaseURL string
	Client  *http.Client
	log     *logging.Logger
}

// NewCountryTool creates the country facts capability.
func NewCountryTool(log *logging.Logger) *CountryTool {
	return &CountryTool{
		BaseURL: defaultCountryBaseURL,
		Client:  newHTTPClient(),
		log:     log.Sub("tools.country"),
	}
}

func (t *CountryTool) Name() string { return NameGetCountryInfo }

func (t *CountryTool) Description() string {
	return "Obtém informações sobre um país."
}

func (t *CountryTool) InputSchema() string {
	return `{
	  "type": "object",
	  "properties": {
	    "country": {"type": "string", "description": "Nome do país"}
	  },
	  "required": ["country"]
	}`
}

type countryRecord struct {
	Capital    []string `json:"capital"`
	Population int64    `json:"population"`
}

func (t *CountryTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	country := strings.TrimSpace(stringArg(args, "country"))
	if country == "" {
		return "Não entendi sobre qual país você quer informações.", nil
	}

	t.log.Debug().Str("country", country).Msg("fetching country info")

	endpoint := fmt.Sprintf("%s/name/%s", t.BaseURL, url.PathEscape(country))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return t.failure(country), nil
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		t.log.Warn().Err(err).Str("country", country).Msg("country request failed")
		return t.failure(country), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.log.Warn().Int("status", resp.StatusCode).Str("country", country).Msg("country response unusable")
		return t.failure(country), nil
	}

	var records []countryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil || len(records) == 0 {
		return t.failure(country), nil
	}

	record := records[0]
	capital := "desconhecida"
	if len(record.Capital) > 0 {
		capital = record.Capital[0]
	}

	return fmt.Sprintf(
		"%s tem como capital %s e uma população de aproximadamente %s habitantes.",
		country, capital, groupDigits(record.Population),
	), nil
}

func (t *CountryTool) failure(country string) string {
	return fmt.Sprintf("Não encontrei informações sobre %s. Verifique o nome!", country)
}

// groupDigits renders n with dot thousand separators (pt-BR convention).
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		s = s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if n < 0 {
		return "-" + b.String()
	}
	return b.String()
}
