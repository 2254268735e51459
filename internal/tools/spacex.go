package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agendai/agendai/internal/logging"
)

// NameGetNextLaunchSpaceX identifies the SpaceX launch lookup capability.
const NameGetNextLaunchSpaceX = "getNextLaunchSpaceX"

const defaultSpaceXBaseURL = "https://api.spacexdata.com/v4"

const spaceXFailureReply = "Não consegui informações sobre o próximo lançamento da SpaceX."

// SpaceXTool fetches the next upcoming SpaceX launch.
type SpaceXTool struct {
	BaseURL string
	Client  *http.Client
	log     *logging.Logger
}

// NewSpaceXTool creates the SpaceX launch capability.
func NewSpaceXTool(log *logging.Logger) *SpaceXTool {
	return &SpaceXTool{
		BaseURL: defaultSpaceXBaseURL,
		Client:  newHTTPClient(),
		log:     log.Sub("tools.spacex"),
	}
}

func (t *SpaceXTool) Name() string { return NameGetNextLaunchSpaceX }

func (t *SpaceXTool) Description() string {
	return "Obtém informações sobre o próximo lançamento da SpaceX."
}

func (t *SpaceXTool) InputSchema() string {
	return `{"type": "object", "properties": {}}`
}

type spaceXLaunch struct {
	Name      string `json:"name"`
	DateLocal string `json:"date_local"`
}

func (t *SpaceXTool) Execute(ctx context.Context, _ map[string]any) (string, error) {
	t.log.Debug().Msg("fetching next SpaceX launch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+"/launches/upcoming", nil)
	if err != nil {
		return spaceXFailureReply, nil
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		t.log.Warn().Err(err).Msg("spacex request failed")
		return spaceXFailureReply, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.log.Warn().Int("status", resp.StatusCode).Msg("spacex response unusable")
		return spaceXFailureReply, nil
	}

	var launches []spaceXLaunch
	if err := json.NewDecoder(resp.Body).Decode(&launches); err != nil || len(launches) == 0 {
		return spaceXFailureReply, nil
	}

	next := launches[0]
	return fmt.Sprintf("O próximo lançamento da SpaceX será %s em %s.", next.Name, formatLaunchDate(next.DateLocal)), nil
}

// formatLaunchDate renders the API's local timestamp in a readable form,
// falling back to the raw value when it does not parse.
func formatLaunchDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format("02/01/2006 15:04")
		}
	}
	return raw
}
