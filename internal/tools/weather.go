package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/agendai/agendai/internal/logging"
)

// NameGetWeather identifies the weather lookup capability.
const NameGetWeather = "getWeather"

const defaultWeatherBaseURL = "https://wttr.in"

// WeatherTool fetches the current conditions for a city from wttr.in.
type WeatherTool struct {
	BaseURL string
	Client  *http.Client
	log     *logging.Logger
}

// NewWeatherTool creates the weather capability.
func NewWeatherTool(log *logging.Logger) *WeatherTool {
	return &WeatherTool{
		BaseURL: defaultWeatherBaseURL,
		Client:  newHTTPClient(),
		log:     log.Sub("tools.weather"),
	}
}

func (t *WeatherTool) Name() string { return NameGetWeather }

func (t *WeatherTool) Description() string {
	return "Obtém a previsão do tempo para uma cidade."
}

func (t *WeatherTool) InputSchema() string {
	return `{
	  "type": "object",
	  "properties": {
	    "city": {"type": "string", "description": "Nome da cidade"}
	  },
	  "required": ["city"]
	}`
}

func (t *WeatherTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	city := strings.TrimSpace(stringArg(args, "city"))
	if city == "" {
		return "Não entendi para qual cidade você quer a previsão do tempo.", nil
	}

	t.log.Debug().Str("city", city).Msg("fetching weather")

	endpoint := fmt.Sprintf("%s/%s?format=%%C+%%t", t.BaseURL, url.PathEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return t.failure(city), nil
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		t.log.Warn().Err(err).Str("city", city).Msg("weather request failed")
		return t.failure(city), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.log.Warn().Int("status", resp.StatusCode).Str("city", city).Msg("weather response unusable")
		return t.failure(city), nil
	}

	return fmt.Sprintf("O clima em %s é %s.", city, strings.TrimSpace(string(body))), nil
}

func (t *WeatherTool) failure(city string) string {
	return fmt.Sprintf("Não consegui obter o clima de %s. Tente novamente!", city)
}
