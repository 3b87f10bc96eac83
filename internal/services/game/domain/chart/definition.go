package chart

import (
	"encoding/json"
	"fmt"
	"io"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
)

const (
	// MinPlayerTotal and MaxPlayerTotal bound the totals a chart may list.
	MinPlayerTotal = 4
	MaxPlayerTotal = 21
)

// Row is one chart entry.
type Row struct {
	Kind         HandKind `json:"handKind"`
	PlayerTotal  int      `json:"playerTotal"`
	DealerUpcard string   `json:"dealerUpcard"`
	Action       Action   `json:"action"`
}

// Situation returns the row key.
func (r Row) Situation() Situation {
	return Situation{Kind: r.Kind, PlayerTotal: r.PlayerTotal, DealerUpcard: r.DealerUpcard}
}

// Definition is a named chart with its rows, as loaded from JSON files.
type Definition struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
	Rows  []Row  `json:"rows"`
}

// Validate checks every row and rejects duplicate keys.
func (d Definition) Validate() error {
	if d.Name == "" {
		return apperrors.New(apperrors.CodeChartInvalid, "chart name is required")
	}
	seen := make(map[Situation]struct{}, len(d.Rows))
	for i, row := range d.Rows {
		if err := validateRow(row); err != nil {
			return apperrors.Wrap(apperrors.CodeChartInvalid, fmt.Sprintf("chart row %d", i), err)
		}
		key := row.Situation()
		if _, ok := seen[key]; ok {
			return apperrors.New(apperrors.CodeChartInvalid, fmt.Sprintf("chart row %d duplicates %s", i, key))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func validateRow(row Row) error {
	if !row.Kind.Valid() {
		return fmt.Errorf("unknown hand kind %q", row.Kind)
	}
	if row.PlayerTotal < MinPlayerTotal || row.PlayerTotal > MaxPlayerTotal {
		return fmt.Errorf("player total %d outside %d..%d", row.PlayerTotal, MinPlayerTotal, MaxPlayerTotal)
	}
	if !ValidUpcard(row.DealerUpcard) {
		return fmt.Errorf("unknown dealer upcard %q", row.DealerUpcard)
	}
	if !row.Action.Valid() {
		return fmt.Errorf("unknown action %q", row.Action)
	}
	return nil
}

// ParseDefinition decodes and validates a JSON chart definition. Unknown
// fields are rejected.
func ParseDefinition(r io.Reader) (Definition, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	var def Definition
	if err := decoder.Decode(&def); err != nil {
		return Definition{}, apperrors.Wrap(apperrors.CodeChartInvalid, "decode chart definition", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// DefaultChartName names the built-in chart.
const DefaultChartName = "basic-hit-stand"

// DefaultDefinition returns the built-in hit/stand basic strategy. Hard
// totals cover 4 through 21 and soft totals 13 through 21; soft 12 has no
// row so a pair of Aces is a skipped decision.
func DefaultDefinition() Definition {
	rows := make([]Row, 0, (18+9)*len(blackjack.UpcardKeys))
	for total := 4; total <= 21; total++ {
		for _, up := range blackjack.UpcardKeys {
			rows = append(rows, Row{Kind: HandHard, PlayerTotal: total, DealerUpcard: up, Action: hardAction(total, up)})
		}
	}
	for total := 13; total <= 21; total++ {
		for _, up := range blackjack.UpcardKeys {
			rows = append(rows, Row{Kind: HandSoft, PlayerTotal: total, DealerUpcard: up, Action: softAction(total, up)})
		}
	}
	return Definition{
		Name:  DefaultChartName,
		Notes: "Basic strategy hit/stand only, dealer stands on soft 17.",
		Rows:  rows,
	}
}

func hardAction(total int, up string) Action {
	switch {
	case total <= 11:
		return ActionHit
	case total == 12:
		if up == "4" || up == "5" || up == "6" {
			return ActionStand
		}
		return ActionHit
	case total <= 16:
		if dealerWeak(up) {
			return ActionStand
		}
		return ActionHit
	default:
		return ActionStand
	}
}

func softAction(total int, up string) Action {
	switch {
	case total <= 17:
		return ActionHit
	case total == 18:
		if up == "9" || up == "10" || up == "A" {
			return ActionHit
		}
		return ActionStand
	default:
		return ActionStand
	}
}

func dealerWeak(up string) bool {
	switch up {
	case "2", "3", "4", "5", "6":
		return true
	}
	return false
}
